package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/rogersnm/tcli/internal/model"
	"gopkg.in/yaml.v3"
)

// Parse reads YAML frontmatter and body from r into T.
func Parse[T any](r io.Reader) (T, string, error) {
	var meta T
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return meta, "", fmt.Errorf("parsing frontmatter: %w", err)
	}
	return meta, strings.TrimSpace(string(body)), nil
}

// Marshal serializes meta as YAML frontmatter followed by body.
func Marshal[T any](meta T, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// TaskMeta is the editable frontmatter of a task document. The description
// is the document body.
type TaskMeta struct {
	ID        string `yaml:"id"`
	Status    string `yaml:"status"`
	CreatedAt string `yaml:"created_at,omitempty"`
	UpdatedAt string `yaml:"updated_at,omitempty"`
}

// MarshalTask renders t as a frontmatter document.
func MarshalTask(t model.Task) ([]byte, error) {
	meta := TaskMeta{
		ID:        t.ID,
		Status:    t.Status.String(),
		CreatedAt: model.FormatTime(t.CreatedAt),
		UpdatedAt: model.FormatTime(t.UpdatedAt),
	}
	return Marshal(meta, t.Description)
}

// ParseTask reads a document written by MarshalTask, possibly edited.
func ParseTask(r io.Reader) (TaskMeta, string, error) {
	meta, body, err := Parse[TaskMeta](r)
	if err != nil {
		return meta, "", err
	}
	if meta.ID == "" {
		return meta, "", fmt.Errorf("task document has no id")
	}
	return meta, body, nil
}
