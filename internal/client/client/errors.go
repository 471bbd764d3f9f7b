package client

import (
	"errors"
	"fmt"

	"github.com/ANITHAC1201/joicy/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// knownErrors are the sentinels the server sends back as status messages.
var knownErrors = []error{
	common.ErrDuplicateUsername,
	common.ErrDuplicateEmail,
	common.ErrUserNotFound,
	common.ErrInvalidCredentials,
	common.ErrStoreUnavailable,
	common.ErrEmptyField,
	common.ErrInvalidUsernameLen,
	common.ErrForbidden,
	common.ErrTokenExpired,
	common.ErrInvalidToken,
	common.ErrSessionNotFound,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	for _, known := range knownErrors {
		if st.Message() == known.Error() {
			return known
		}
	}

	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
