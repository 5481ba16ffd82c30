package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/rogersnm/tcli/internal/id"
)

// TimeLayout is the on-disk and display format for task timestamps:
// local wall clock, second resolution, no zone.
const TimeLayout = "2006-01-02 15:04:05"

var now = func() time.Time {
	return time.Now().Truncate(time.Second)
}

type Task struct {
	ID          string    `yaml:"id"`
	Description string    `yaml:"-"`
	Status      Status    `yaml:"status"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

// NewTask creates a NOT_STARTED task with a fresh id.
func NewTask(description string) (*Task, error) {
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	return newTask(description, StatusNotStarted)
}

func NewTaskWithStatus(description, rawStatus string) (*Task, error) {
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	s, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return newTask(description, s)
}

func newTask(description string, s Status) (*Task, error) {
	tid, err := id.New()
	if err != nil {
		return nil, err
	}
	ts := now()
	return &Task{
		ID:          tid,
		Description: description,
		Status:      s,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// Reconstruct rehydrates a stored task. Every field is re-validated; a record
// that was valid when written is not trusted to still be valid.
func Reconstruct(taskID, description, rawStatus string, createdAt, updatedAt time.Time) (*Task, error) {
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	s, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	t := &Task{
		ID:          taskID,
		Description: description,
		Status:      s,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: task id is required", ErrInvalidArgument)
	}
	if err := ValidateDescription(t.Description); err != nil {
		return err
	}
	if err := ValidateStatus(t.Status); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("%w: task %s has no creation time", ErrInvalidArgument, t.ID)
	}
	if wallBefore(t.UpdatedAt, t.CreatedAt) {
		return fmt.Errorf("%w: task %s updated before it was created", ErrInvalidArgument, t.ID)
	}
	return nil
}

func (t *Task) SetDescription(description string) error {
	if err := ValidateDescription(description); err != nil {
		return err
	}
	t.Description = description
	t.touch()
	return nil
}

func (t *Task) SetStatus(rawStatus string) error {
	s, err := ParseStatus(rawStatus)
	if err != nil {
		return err
	}
	t.Mark(s)
	return nil
}

// Mark sets an already-validated status.
func (t *Task) Mark(s Status) {
	t.Status = s
	t.touch()
}

// touch refreshes UpdatedAt. It never moves backwards, neither as an instant
// nor as the local wall time written to disk, so a clock that falls back
// (skew or the end of daylight saving) leaves it alone.
func (t *Task) touch() {
	if ts := now(); ts.After(t.UpdatedAt) && !wallBefore(ts, t.UpdatedAt) {
		t.UpdatedAt = ts
	}
}

// wallBefore orders timestamps the way they are persisted: local wall time
// at second resolution. TimeLayout sorts lexically.
func wallBefore(a, b time.Time) bool {
	return FormatTime(a) < FormatTime(b)
}

func FormatTime(ts time.Time) string {
	return ts.Local().Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	ts, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return ts, nil
}

// ValidateDescription rejects empty and whitespace-only descriptions.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: task description is required", ErrInvalidArgument)
	}
	return nil
}
