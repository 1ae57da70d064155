// Package errors defines the error categories shared by every domain. Domain packages wrap
// these sentinels with their own messages so callers can match either the precise error or
// its category with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or wrong credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLocked indicates the caller has been temporarily locked out.
	ErrLocked = errors.New("locked")

	// ErrStorage indicates the persistence layer failed. Callers may retry.
	ErrStorage = errors.New("storage error")
)

// Wrap prefixes err with message and keeps it matchable through errors.Is. Wrap(nil) is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapStorage wraps a driver error so that it matches both ErrStorage and the
// original error through errors.Is.
func WrapStorage(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", message, ErrStorage, err)
}
