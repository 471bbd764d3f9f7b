package cli

import (
	"errors"

	"github.com/ANITHAC1201/joicy/internal/client/client"
	"github.com/ANITHAC1201/joicy/internal/common"
)

var (
	errNotLoggedIn      = errors.New("please log in first")
	errPasswordMismatch = errors.New("passwords do not match")
	errDeleteCancelled  = errors.New("delete cancelled")
)

// userMessage turns an error into the line shown to the operator.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		return "Username already exists"
	case errors.Is(err, common.ErrDuplicateEmail):
		return "Email already exists"
	case errors.Is(err, common.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, common.ErrStoreUnavailable):
		return "Credential store unavailable, try again later"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.Is(err, common.ErrForbidden):
		return "Access denied: admin privileges required"
	case sessionLost(err):
		return "Session is no longer valid, please log in again"
	}
	return err.Error()
}

// sessionLost reports whether err means the held session no longer exists.
func sessionLost(err error) bool {
	return errors.Is(err, client.ErrUnauthorized) ||
		errors.Is(err, common.ErrorUnauthorized) ||
		errors.Is(err, common.ErrTokenExpired) ||
		errors.Is(err, common.ErrInvalidToken) ||
		errors.Is(err, common.ErrSessionNotFound)
}
