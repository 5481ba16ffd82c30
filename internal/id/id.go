package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Len is the number of hex characters kept from the random UUID.
const Len = 8

// New returns a short random task id. Collisions are possible but not
// checked against the store.
func New() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return strings.ReplaceAll(u.String(), "-", "")[:Len], nil
}
