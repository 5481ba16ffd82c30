package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/rogersnm/tcli/internal/model"
)

// DefaultFile is the tasks file used when nothing else is configured,
// relative to the working directory.
const DefaultFile = "tasks.json"

// LocalStore implements Store over a single JSON file. Every operation reads
// the whole file and every mutation rewrites it. There is no locking: two
// processes writing at once can lose one of the writes.
type LocalStore struct {
	path string
	log  *log.Logger
}

// compile-time check
var _ Store = (*LocalStore)(nil)

type Option func(*LocalStore)

func WithLogger(l *log.Logger) Option {
	return func(s *LocalStore) {
		if l != nil {
			s.log = l
		}
	}
}

// NewLocal opens the tasks file at path, creating it with an empty list if it
// does not exist yet. Failing to create it is fatal.
func NewLocal(path string, opts ...Option) (*LocalStore, error) {
	if path == "" {
		path = DefaultFile
	}
	s := &LocalStore{path: path, log: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LocalStore) Path() string {
	return s.path
}

func (s *LocalStore) init() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return &StorageError{Op: "stat", Path: s.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &StorageError{Op: "create directory for", Path: s.path, Err: err}
	}
	s.log.Debug("creating tasks file", "path", s.path)
	return s.save(nil)
}

type taskRecord struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toRecord(t *model.Task) taskRecord {
	return taskRecord{
		ID:          t.ID,
		Description: t.Description,
		Status:      t.Status.String(),
		CreatedAt:   model.FormatTime(t.CreatedAt),
		UpdatedAt:   model.FormatTime(t.UpdatedAt),
	}
}

func (r taskRecord) toTask() (*model.Task, error) {
	created, err := model.ParseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := model.ParseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return model.Reconstruct(r.ID, r.Description, r.Status, created, updated)
}

// load never fails. Unreadable or corrupt content is logged and yields an
// empty list, so the next save overwrites whatever was on disk.
func (s *LocalStore) load() []*model.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Error("reading tasks, continuing with an empty list", "path", s.path, "err", err)
		return nil
	}
	tasks, err := decodeTasks(data)
	if err != nil {
		s.log.Error("loading tasks, continuing with an empty list", "path", s.path, "err", err)
		return nil
	}
	s.log.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks
}

func decodeTasks(data []byte) ([]*model.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	if err := tasksSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validating tasks file: %w", err)
	}

	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	tasks := make([]*model.Task, 0, len(records))
	for i, r := range records {
		t, err := r.toTask()
		if err != nil {
			return nil, fmt.Errorf("task %d (%s): %w", i, r.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// save rewrites the whole file with tasks, in order.
func (s *LocalStore) save(tasks []*model.Task) error {
	records := make([]taskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = toRecord(t)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	s.log.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// StorageError reports a failure to create or write the tasks file. There is
// no in-memory fallback, so callers should treat it as fatal.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err came from a failed write or initialization.
func IsFatal(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
