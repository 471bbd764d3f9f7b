package client

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/logging"
	gs "github.com/ANITHAC1201/joicy/internal/server/grpc"
	"github.com/ANITHAC1201/joicy/internal/session"
	"github.com/ANITHAC1201/joicy/internal/storage"
	"github.com/ANITHAC1201/joicy/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newBufClient(t *testing.T) *GRPCClient {
	t.Helper()

	db, dialect, err := storage.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	m, err := storage.NewManager(dialect, nil)
	require.NoError(t, err)

	store := users.NewService(db, m, users.Options{AdminUsernames: []string{"admin"}}, nil)
	require.NoError(t, store.Initialize(context.Background()))

	sessions := session.NewManager(session.NewMemoryStore(), []byte("k"), time.Hour)
	srv := gs.NewGRPCServer("bufnet", logging.Discard(), store, sessions)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	c, err := NewGRPCClient("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		cancel()
		<-done
	})
	return c
}

func TestGRPCClient_Flow(t *testing.T) {
	c := newBufClient(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, err := c.Register(ctx, "admin", "admin@x.com", "root-pw")
	require.NoError(t, err)
	bob, err := c.Register(ctx, "bob", "bob@x.com", "pw")
	require.NoError(t, err)

	_, err = c.Register(ctx, "bob", "bob2@x.com", "pw")
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	_, err = c.Login(ctx, "ghost", "pw")
	require.ErrorIs(t, err, common.ErrUserNotFound)
	_, err = c.Login(ctx, "bob", "nope")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Empty(t, c.Token())

	_, err = c.WhoAmI(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	id, err := c.Login(ctx, "admin@x.com", "root-pw")
	require.NoError(t, err)
	assert.Equal(t, common.RoleAdmin, id.Role)
	assert.NotEmpty(t, c.Token())

	me, err := c.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)

	list, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Total)

	deleted, err := c.DeleteUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())
	require.NoError(t, c.Logout(ctx))

	_, err = c.Stats(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGRPCClient_NonAdminForbidden(t *testing.T) {
	c := newBufClient(t)
	ctx := context.Background()

	_, err := c.Register(ctx, "bob", "bob@x.com", "pw")
	require.NoError(t, err)
	_, err = c.Login(ctx, "bob", "pw")
	require.NoError(t, err)

	_, err = c.ListUsers(ctx)
	require.ErrorIs(t, err, common.ErrForbidden)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"duplicate", status.Error(codes.AlreadyExists, "email already registered"), common.ErrDuplicateEmail},
		{"store down", status.Error(codes.Unavailable, "credential store unavailable"), common.ErrStoreUnavailable},
		{"transport down", status.Error(codes.Unavailable, "connection refused"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
		{"unauthenticated", status.Error(codes.Unauthenticated, "whatever"), ErrUnauthorized},
		{"permission", status.Error(codes.PermissionDenied, "nope"), ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.in), tt.want)
		})
	}

	assert.NoError(t, mapError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, mapError(plain))

	internal := mapError(status.Error(codes.Internal, "internal error"))
	assert.Contains(t, internal.Error(), "rpc error")
}

func TestWithSessionToken_ReplacesExisting(t *testing.T) {
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.SessionTokenHeaderName, "old", "x-other", "1")

	ctx = withSessionToken(ctx, "new")

	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"new"}, md.Get(common.SessionTokenHeaderName))
	assert.Equal(t, []string{"1"}, md.Get("x-other"))
}

func TestGRPCClient_UnreachableServer(t *testing.T) {
	c, err := NewGRPCClient("127.0.0.1:1")
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.ErrorIs(t, c.Ping(ctx), ErrUnavailable)
}
