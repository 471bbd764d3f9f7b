package services

import (
	"context"

	"github.com/ANITHAC1201/joicy/internal/client/client"
	"github.com/ANITHAC1201/joicy/internal/users"
)

// remoteClient is the subset of client.GRPCClient used here.
type remoteClient interface {
	Register(ctx context.Context, username, email, password string) (*users.Summary, error)
	Login(ctx context.Context, identifier, password string) (*users.Identity, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (*users.Identity, error)
	ListUsers(ctx context.Context) ([]users.Summary, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context) (*users.Stats, error)
	Close() error
}

var _ remoteClient = (*client.GRPCClient)(nil)

type remoteService struct {
	client remoteClient
}

// NewRemoteAccountService returns an AccountService backed by an accounts
// server. The server holds the session; the client keeps its token.
func NewRemoteAccountService(c *client.GRPCClient) AccountService {
	return &remoteService{client: c}
}

func (s *remoteService) Register(ctx context.Context, username, email string, password []byte) (*users.Summary, error) {
	return s.client.Register(ctx, username, email, string(password))
}

func (s *remoteService) Login(ctx context.Context, identifier string, password []byte) (*users.Identity, error) {
	return s.client.Login(ctx, identifier, string(password))
}

func (s *remoteService) Logout(ctx context.Context) error {
	return s.client.Logout(ctx)
}

func (s *remoteService) WhoAmI(ctx context.Context) (*users.Identity, error) {
	return s.client.WhoAmI(ctx)
}

func (s *remoteService) ListUsers(ctx context.Context) ([]users.Summary, error) {
	return s.client.ListUsers(ctx)
}

func (s *remoteService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return s.client.DeleteUser(ctx, id)
}

func (s *remoteService) Stats(ctx context.Context) (*users.Stats, error) {
	return s.client.Stats(ctx)
}

func (s *remoteService) Close() error {
	return s.client.Close()
}
