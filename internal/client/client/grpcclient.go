package client

import (
	"context"
	"sync"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/rpc"
	"github.com/ANITHAC1201/joicy/internal/users"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *rpc.AccountsClient

	mu    sync.RWMutex
	token string
}

func withSessionToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.SessionTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) sessionTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.Token(); token != "" {
		ctx = withSessionToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults (insecure transport, token interceptor).
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.sessionTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewAccountsClient(conn)
	return c, nil
}

// Token returns the current session token, empty when logged out.
func (s *GRPCClient) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *GRPCClient) Register(ctx context.Context, username, email, password string) (*users.Summary, error) {
	resp, err := s.client.Register(ctx, &rpc.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.User, nil
}

// Login authenticates and keeps the issued session token for later calls.
func (s *GRPCClient) Login(ctx context.Context, identifier, password string) (*users.Identity, error) {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Identifier: identifier, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	s.setToken(resp.Token)
	return &resp.User, nil
}

// Logout revokes the session on the server. The local token is dropped even
// when the server call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if s.Token() == "" {
		return nil
	}
	_, err := s.client.Logout(ctx, &rpc.LogoutRequest{})
	s.setToken("")
	return mapError(err)
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*users.Identity, error) {
	resp, err := s.client.WhoAmI(ctx, &rpc.WhoAmIRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.User, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) ([]users.Summary, error) {
	resp, err := s.client.ListUsers(ctx, &rpc.ListUsersRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Users, nil
}

func (s *GRPCClient) DeleteUser(ctx context.Context, id int64) (bool, error) {
	resp, err := s.client.DeleteUser(ctx, &rpc.DeleteUserRequest{ID: id})
	if err != nil {
		return false, mapError(err)
	}
	return resp.Deleted, nil
}

func (s *GRPCClient) Stats(ctx context.Context) (*users.Stats, error) {
	resp, err := s.client.Stats(ctx, &rpc.StatsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Stats, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}
