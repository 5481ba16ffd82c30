package markdown

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rogersnm/tcli/internal/model"
	"github.com/rogersnm/tcli/internal/search"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

func RenderTaskTable(tasks []model.Task) string {
	if len(tasks) == 0 {
		return "No tasks found."
	}
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		rows[i] = []string{t.ID, t.Description, RenderStatus(t.Status), model.FormatTime(t.CreatedAt), model.FormatTime(t.UpdatedAt)}
	}
	return renderTable([]string{"ID", "Description", "Status", "Created", "Updated"}, rows)
}

func RenderMatchTable(matches []search.Match) string {
	if len(matches) == 0 {
		return "No matching tasks."
	}
	rows := make([][]string, len(matches))
	for i, m := range matches {
		rows[i] = []string{m.Task.ID, m.Task.Description, RenderStatus(m.Task.Status), strconv.Itoa(m.Distance)}
	}
	return renderTable([]string{"ID", "Description", "Status", "Distance"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
