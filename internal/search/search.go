// Package search ranks tasks against a free-text query by edit distance.
package search

import (
	"sort"
	"strings"

	"github.com/rogersnm/tcli/internal/model"
)

// DefaultLimit is the number of matches returned when the caller has no
// preference.
const DefaultLimit = 5

// Match pairs a task with its distance from the query. Lower is better.
type Match struct {
	Task     model.Task
	Distance int
}

// Rank scores every task against query and returns the k best, ascending by
// distance. Ties keep the input order.
func Rank(query string, tasks []model.Task, k int) []Match {
	if k <= 0 {
		return []Match{}
	}
	matches := make([]Match, len(tasks))
	for i, t := range tasks {
		matches[i] = Match{Task: t, Distance: Score(query, t.Description)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches
}

// Score is 0 when the description contains the query (case-insensitive),
// otherwise the edit distance between the two folded strings. An empty query
// is not treated as contained, so it scores the description's length.
func Score(query, description string) int {
	q := strings.ToLower(query)
	d := strings.ToLower(description)
	if q != "" && strings.Contains(d, q) {
		return 0
	}
	return Distance(q, d)
}

// Distance is the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
