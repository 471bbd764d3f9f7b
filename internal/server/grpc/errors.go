package grpc

import (
	"context"
	"errors"

	"github.com/ANITHAC1201/joicy/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var statusCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrDuplicateUsername, codes.AlreadyExists},
	{common.ErrDuplicateEmail, codes.AlreadyExists},
	{common.ErrEmptyField, codes.InvalidArgument},
	{common.ErrInvalidUsernameLen, codes.InvalidArgument},
	{common.ErrUserNotFound, codes.NotFound},
	{common.ErrInvalidCredentials, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrSessionNotFound, codes.Unauthenticated},
	{common.ErrorUnauthorized, codes.Unauthenticated},
	{common.ErrForbidden, codes.PermissionDenied},
	{common.ErrStoreUnavailable, codes.Unavailable},
}

// toStatus converts a domain error into a gRPC status whose message is the
// sentinel's text. Anything unrecognised becomes Internal without detail.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, m := range statusCodes {
		if errors.Is(err, m.err) {
			return status.Error(m.code, m.err.Error())
		}
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
