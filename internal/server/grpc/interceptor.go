package grpc

import (
	"context"
	"time"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/rpc"
	"github.com/ANITHAC1201/joicy/internal/users"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	identityKey ctxKey = "identity"
	tokenKey    ctxKey = "token"
)

// protectedMethods need a valid session; the value says whether the admin
// role is also required.
var protectedMethods = map[string]bool{
	rpc.FullMethod(rpc.MethodLogout):     false,
	rpc.FullMethod(rpc.MethodWhoAmI):     false,
	rpc.FullMethod(rpc.MethodListUsers):  true,
	rpc.FullMethod(rpc.MethodDeleteUser): true,
	rpc.FullMethod(rpc.MethodStats):      true,
}

// IdentityFromContext returns the identity attached by the session
// interceptor.
func IdentityFromContext(ctx context.Context) (users.Identity, bool) {
	id, ok := ctx.Value(identityKey).(users.Identity)
	return id, ok
}

func tokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.SessionTokenHeaderName); len(values) > 0 {
		return values[0]
	}
	return ""
}

func (s *GRPCServer) sessionInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	adminOnly, protected := protectedMethods[info.FullMethod]
	if !protected {
		return handler(ctx, req)
	}

	token := tokenFromMetadata(ctx)
	if token == "" {
		return nil, toStatus(common.ErrorUnauthorized)
	}

	identity, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, toStatus(err)
	}

	if adminOnly && identity.Role != common.RoleAdmin {
		s.logger.Warn(ctx, "admin method denied", "method", info.FullMethod, "user_id", identity.ID)
		return nil, toStatus(common.ErrForbidden)
	}

	ctx = context.WithValue(ctx, identityKey, identity)
	ctx = context.WithValue(ctx, tokenKey, token)

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Debug(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start))

	return resp, err
}
