package pkg

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds surfaced by the service layer. Handlers map these onto HTTP
// status codes; everything else is treated as an internal error.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
	ErrTimeout      = errors.New("deadline exceeded")
)

func NotFoundf(format string, args ...any) error {
	return kindf(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...any) error {
	return kindf(ErrConflict, format, args...)
}

func Forbiddenf(format string, args ...any) error {
	return kindf(ErrForbidden, format, args...)
}

func InvalidStatef(format string, args ...any) error {
	return kindf(ErrInvalidState, format, args...)
}

func Validationf(format string, args ...any) error {
	return kindf(ErrValidation, format, args...)
}

func kindf(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

// WrapStore normalizes errors coming back from a store call: a blown
// deadline becomes ErrTimeout so callers see a partial-failure error
// instead of a silently truncated result.
func WrapStore(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("store call: %w", ErrTimeout)
	}
	return err
}
