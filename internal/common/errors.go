// Package common defines shared constants and sentinel errors used across
// the store, the server and the CLI. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Credential store errors.
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreUnavailable   = errors.New("credential store unavailable")

	// Validation errors (registration input).
	ErrEmptyField         = errors.New("please fill in all fields")
	ErrInvalidUsernameLen = errors.New("username must be 3-20 characters")

	// Access control.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("admin privileges required")

	// Session and token errors.
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrSessionNotFound = errors.New("session not found")
)
