package grpc

import (
	"context"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/rpc"
)

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {
	user, err := s.store.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &rpc.RegisterResponse{User: *user}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	identity, err := s.store.Authenticate(ctx, req.Identifier, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	token, err := s.sessions.Issue(ctx, *identity)
	if err != nil {
		s.logger.Error(ctx, "issue session", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Logged in", "user_id", identity.ID)
	return &rpc.LoginResponse{Token: token, User: *identity}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *rpc.LogoutRequest) (*rpc.LogoutResponse, error) {
	if err := s.sessions.Revoke(ctx, tokenFromContext(ctx)); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.LogoutResponse{}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *rpc.WhoAmIRequest) (*rpc.WhoAmIResponse, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrorUnauthorized)
	}
	return &rpc.WhoAmIResponse{User: identity}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *rpc.ListUsersRequest) (*rpc.ListUsersResponse, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ListUsersResponse{Users: list}, nil
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *rpc.DeleteUserRequest) (*rpc.DeleteUserResponse, error) {
	deleted, err := s.store.Delete(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	if deleted {
		if err := s.sessions.RevokeUser(ctx, req.ID); err != nil {
			s.logger.Warn(ctx, "revoke sessions of deleted user", "user_id", req.ID, "error", err)
		}
	}

	return &rpc.DeleteUserResponse{Deleted: deleted}, nil
}

func (s *GRPCServer) Stats(ctx context.Context, _ *rpc.StatsRequest) (*rpc.StatsResponse, error) {
	st, err := s.store.Stats(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.StatsResponse{Stats: *st}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}
