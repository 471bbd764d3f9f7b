// Package grpc serves the FlyScope accounts service over gRPC. Messages are
// JSON encoded (see package rpc); the session token travels in metadata.
package grpc

import (
	"context"
	"net"

	"github.com/ANITHAC1201/joicy/internal/logging"
	"github.com/ANITHAC1201/joicy/internal/rpc"
	"github.com/ANITHAC1201/joicy/internal/users"
	"google.golang.org/grpc"
)

// AccountStore is the credential store as the server uses it.
type AccountStore interface {
	Register(ctx context.Context, username, email, password string) (*users.Summary, error)
	Authenticate(ctx context.Context, identifier, password string) (*users.Identity, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListAll(ctx context.Context) ([]users.Summary, error)
	Stats(ctx context.Context) (*users.Stats, error)
}

// Sessions issues and resolves session tokens.
type Sessions interface {
	Issue(ctx context.Context, identity users.Identity) (string, error)
	Resolve(ctx context.Context, token string) (users.Identity, error)
	Revoke(ctx context.Context, token string) error
	RevokeUser(ctx context.Context, userID int64) error
}

type GRPCServer struct {
	address  string
	store    AccountStore
	sessions Sessions
	logger   logging.Logger
}

var _ rpc.AccountsServer = (*GRPCServer)(nil)

func NewGRPCServer(address string, l logging.Logger, store AccountStore, sessions Sessions) *GRPCServer {
	return &GRPCServer{
		address:  address,
		logger:   l.With("module", "grpc_server"),
		store:    store,
		sessions: sessions,
	}
}

// newServer builds the grpc.Server with the interceptor chain and the
// accounts service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.sessionInterceptor))
	rpc.RegisterAccountsServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
