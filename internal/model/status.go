package model

import (
	"strings"
)

type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

var validStatuses = []Status{StatusNotStarted, StatusInProgress, StatusDone}

// Statuses returns the canonical statuses in lifecycle order.
func Statuses() []Status {
	return append([]Status(nil), validStatuses...)
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus matches raw against the canonical names, ignoring case and
// surrounding whitespace.
func ParseStatus(raw string) (Status, error) {
	norm := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, v := range validStatuses {
		if norm == v {
			return v, nil
		}
	}
	return "", &InvalidStatusError{Raw: raw}
}

func ValidateStatus(s Status) error {
	for _, v := range validStatuses {
		if s == v {
			return nil
		}
	}
	return &InvalidStatusError{Raw: string(s)}
}

func statusNames() string {
	names := make([]string, len(validStatuses))
	for i, s := range validStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
