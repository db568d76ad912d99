// Package common defines shared constants and sentinel errors used across
// client and server layers of gophnotes. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors returned by the authentication and notes services.
	ErrDuplicateIdentifier = errors.New("identifier already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")

	// ErrStoreFailure wraps unexpected persistence errors. The wrapped chain
	// keeps the driver detail for logs; it must not be shown to clients.
	ErrStoreFailure = errors.New("store failure")
	ErrInternal     = errors.New("internal error")

	// Client-side errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
)
