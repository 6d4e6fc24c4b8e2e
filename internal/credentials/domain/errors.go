package domain

import (
	"github.com/allisson/passvault/internal/errors"
)

// Credential-specific error definitions.
var (
	// ErrCredentialNotFound indicates no credential exists with the given id.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrUserAuthRequired indicates the password cannot be revealed without user authentication.
	ErrUserAuthRequired = errors.Wrap(errors.ErrUnauthorized, "user authentication required")
)
