// Package errors provides the shared error kinds used across idvault modules.
//
// Domain packages wrap these sentinels with their own messages so that handlers can map
// any error to an HTTP status with errors.Is, without knowing which module produced it.
package errors

import (
	"errors"
	"fmt"
)

// Standard error kinds shared by every domain module.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., a duplicate fingerprint).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the caller supplied malformed or missing data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnprocessable indicates well-formed input that could not be processed,
	// such as a ciphertext that does not decrypt under the supplied IV.
	ErrUnprocessable = errors.New("unprocessable")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated client doesn't have permission.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
