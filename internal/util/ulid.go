package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a new, lexicographically sortable ULID string.
// ulid.Make uses a process-wide monotonic entropy source and is safe for
// concurrent use.
func NewULID() string {
	return ulid.Make().String()
}

// IsULID reports whether id is a well-formed ULID.
func IsULID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}
