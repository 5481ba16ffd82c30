package store

import (
	"fmt"
	"strings"

	"github.com/rogersnm/tcli/internal/model"
)

// Outcome is the result of an operation on a task addressed by id. A missing
// id is an expected operator mistake, so it is reported here rather than as
// an error.
type Outcome int

const (
	// Failed accompanies a non-nil error.
	Failed Outcome = iota
	Success
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NotFound:
		return "not found"
	default:
		return "failed"
	}
}

func (s *LocalStore) Add(t *model.Task) error {
	if t == nil {
		return fmt.Errorf("%w: task is required", model.ErrInvalidArgument)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	tasks := s.load()
	tasks = append(tasks, t)
	return s.save(tasks)
}

func (s *LocalStore) Get(taskID string) (model.Task, Outcome, error) {
	if err := checkID(taskID); err != nil {
		return model.Task{}, Failed, err
	}
	for _, t := range s.load() {
		if t.ID == taskID {
			return *t, Success, nil
		}
	}
	return model.Task{}, NotFound, nil
}

// List returns every task in file order.
func (s *LocalStore) List() []model.Task {
	return values(s.load(), func(*model.Task) bool { return true })
}

func (s *LocalStore) ListByStatus(status model.Status) []model.Task {
	return values(s.load(), func(t *model.Task) bool { return t.Status == status })
}

func (s *LocalStore) UpdateDescription(taskID, description string) (Outcome, error) {
	if err := checkID(taskID); err != nil {
		return Failed, err
	}
	if err := model.ValidateDescription(description); err != nil {
		return Failed, err
	}
	return s.mutate(taskID, func(t *model.Task) error {
		return t.SetDescription(description)
	})
}

func (s *LocalStore) UpdateStatus(taskID, status string) (Outcome, error) {
	if err := checkID(taskID); err != nil {
		return Failed, err
	}
	st, err := model.ParseStatus(status)
	if err != nil {
		return Failed, err
	}
	return s.mutate(taskID, func(t *model.Task) error {
		t.Mark(st)
		return nil
	})
}

func (s *LocalStore) UpdateDescriptionAndStatus(taskID, description, status string) (Outcome, error) {
	if err := checkID(taskID); err != nil {
		return Failed, err
	}
	if err := model.ValidateDescription(description); err != nil {
		return Failed, err
	}
	st, err := model.ParseStatus(status)
	if err != nil {
		return Failed, err
	}
	return s.mutate(taskID, func(t *model.Task) error {
		if err := t.SetDescription(description); err != nil {
			return err
		}
		t.Mark(st)
		return nil
	})
}

// MarkAs sets a status the caller has already validated, as the
// mark-in-progress and mark-done shortcuts do.
func (s *LocalStore) MarkAs(taskID string, status model.Status) (Outcome, error) {
	if err := checkID(taskID); err != nil {
		return Failed, err
	}
	if err := model.ValidateStatus(status); err != nil {
		return Failed, err
	}
	return s.mutate(taskID, func(t *model.Task) error {
		t.Mark(status)
		return nil
	})
}

func (s *LocalStore) Delete(taskID string) (Outcome, error) {
	if err := checkID(taskID); err != nil {
		return Failed, err
	}
	tasks := s.load()
	for i, t := range tasks {
		if t.ID != taskID {
			continue
		}
		tasks = append(tasks[:i], tasks[i+1:]...)
		if err := s.save(tasks); err != nil {
			return Failed, err
		}
		return Success, nil
	}
	s.log.Debug("task not found", "id", taskID)
	return NotFound, nil
}

// mutate applies fn to the first task with taskID and rewrites the file. The
// file is left untouched when the id is absent or fn fails.
func (s *LocalStore) mutate(taskID string, fn func(*model.Task) error) (Outcome, error) {
	tasks := s.load()
	for _, t := range tasks {
		if t.ID != taskID {
			continue
		}
		if err := fn(t); err != nil {
			return Failed, err
		}
		if err := s.save(tasks); err != nil {
			return Failed, err
		}
		return Success, nil
	}
	s.log.Debug("task not found", "id", taskID)
	return NotFound, nil
}

func checkID(taskID string) error {
	if strings.TrimSpace(taskID) == "" {
		return fmt.Errorf("%w: task id is required", model.ErrInvalidArgument)
	}
	return nil
}

func values(tasks []*model.Task, keep func(*model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, *t)
		}
	}
	return out
}
