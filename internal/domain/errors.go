package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateID is reported when adding a record whose id is already present.
	ErrDuplicateID = errors.New("duplicate student id")
	// ErrNotFound is reported when updating or deleting an unknown id.
	ErrNotFound = errors.New("student not found")
	// ErrMalformedStorage is returned when the records file cannot be decoded.
	ErrMalformedStorage = errors.New("malformed records storage")
	// ErrMissingField is returned when a serialized record lacks a required key.
	ErrMissingField = errors.New("missing required field")
	// ErrBadCredentials is returned when a passphrase does not match the stored verifier.
	ErrBadCredentials = errors.New("wrong passphrase")
)

// MissingFieldError names the required key that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingField.Error(), e.Field)
}

// Is lets errors.Is(err, ErrMissingField) match.
func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }
