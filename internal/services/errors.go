package services

import "github.com/go-faster/errors"

// Domain errors surfaced to the HTTP layer. Storage failures are wrapped and
// passed through unchanged.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrDependencyFailure  = errors.New("dependency failure")
)

// validationError wraps ErrValidation with a human readable reason.
func validationError(reason string) error {
	return errors.Wrap(ErrValidation, reason)
}
