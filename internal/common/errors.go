// Package common defines shared sentinel and typed errors used across
// FragShare components. Callers should use errors.Is (or errors.As for
// typed errors) to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Upload pipeline errors.
	ErrChecksum      = errors.New("checksum computation failed")
	ErrStorageWrite  = errors.New("storage write failed")
	ErrSlugExhausted = errors.New("slug space exhausted")

	// Link resolution outcomes. Expected and user-facing, none of them
	// indicates a system defect.
	ErrLinkRevoked = errors.New("link revoked")
	ErrLinkExpired = errors.New("link expired")

	// Auth errors.
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// DuplicateFileError is returned when a user uploads content that is
// byte-identical to a file they already stored. It carries the checksum
// and the declared filename for caller messaging.
type DuplicateFileError struct {
	Checksum string
	Filename string
}

func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("duplicate file detected: %s (checksum %s)", e.Filename, e.Checksum)
}
