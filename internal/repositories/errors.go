package repositories

import "github.com/go-faster/errors"

var (
	// ErrNotFound is returned when no row matches the lookup key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate record")
)
