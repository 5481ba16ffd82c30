package model

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks caller mistakes: empty ids, empty descriptions,
// unknown statuses. Storage is never touched when it is returned.
var ErrInvalidArgument = errors.New("invalid argument")

type InvalidStatusError struct {
	Raw string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q: must be one of %s", e.Raw, statusNames())
}

func (e *InvalidStatusError) Is(target error) bool {
	return target == ErrInvalidArgument
}
