package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers a missing, expired, or rejected credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound marks a resource the API no longer knows about.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks a request blocked locally before dispatch.
	ErrInvalidInput = errors.New("invalid input")
	// ErrServer marks a non-2xx response that is not auth or not-found.
	ErrServer = errors.New("server error")
	// ErrTemporary marks failures worth presenting with a retry affordance.
	ErrTemporary = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
