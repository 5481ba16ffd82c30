package store

import (
	"github.com/rogersnm/tcli/internal/model"
	"github.com/rogersnm/tcli/internal/search"
)

// Store defines the task operations the CLI depends on. LocalStore implements
// it over a JSON file. Operations addressed by id report a missing id through
// Outcome; errors are either validation errors (model.ErrInvalidArgument) or
// fatal storage errors (IsFatal).
type Store interface {
	Path() string

	Add(t *model.Task) error
	Get(taskID string) (model.Task, Outcome, error)
	List() []model.Task
	ListByStatus(status model.Status) []model.Task

	UpdateDescription(taskID, description string) (Outcome, error)
	UpdateStatus(taskID, status string) (Outcome, error)
	UpdateDescriptionAndStatus(taskID, description, status string) (Outcome, error)
	MarkAs(taskID string, status model.Status) (Outcome, error)
	Delete(taskID string) (Outcome, error)

	Search(query string, k int) []search.Match
}
