// Package repository defines error values that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios without inspecting driver error
// strings themselves.  For example, ErrUsernameExists maps to an HTTP 400
// on registration, while ErrNotFound maps to a 404 on lookups.
package repository

import (
	"errors"
	"strings"
)

// ErrUsernameExists is returned when registration collides with an existing
// username.  Handlers should translate this into an HTTP 400 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrDuplicateNumber is returned when an entity row insert collides with an
// already stored number.  Under correct generator use this cannot happen;
// the unique index is a safety net.
var ErrDuplicateNumber = errors.New("number already exists")

// ErrNotFound is returned when a lookup matches no row.  A missing row is
// an expected outcome, not a server fault.
var ErrNotFound = errors.New("not found")

// isDuplicateKey reports whether err is the MySQL duplicate-entry error
// (code 1062) raised when a unique index rejects an insert.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
