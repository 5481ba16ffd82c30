package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rogersnm/tcli/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	todoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	inProgStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func StatusStyle(status model.Status) lipgloss.Style {
	switch status {
	case model.StatusDone:
		return doneStyle
	case model.StatusInProgress:
		return inProgStyle
	default:
		return todoStyle
	}
}

func RenderStatus(status model.Status) string {
	return StatusStyle(status).Render(status.String())
}

// RenderTask renders a task as a styled header and field list followed by its
// description rendered as markdown.
func RenderTask(t model.Task) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	body, err := r.Render(t.Description)
	if err != nil {
		return "", fmt.Errorf("rendering task %s: %w", t.ID, err)
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Task " + t.ID))
	sb.WriteString("\n")
	for _, f := range []struct{ label, value string }{
		{"ID", t.ID},
		{"Status", RenderStatus(t.Status)},
		{"Created", model.FormatTime(t.CreatedAt)},
		{"Updated", model.FormatTime(t.UpdatedAt)},
	} {
		sb.WriteString("  " + labelStyle.Render(f.label+":") + " " + f.value + "\n")
	}
	sb.WriteString(body)
	return sb.String(), nil
}
