package store

import (
	"github.com/rogersnm/tcli/internal/search"
)

// Search ranks every stored task against query and returns the best k.
func (s *LocalStore) Search(query string, k int) []search.Match {
	return search.Rank(query, s.List(), k)
}
