package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/logging"
	"github.com/ANITHAC1201/joicy/internal/storage"
	"github.com/ANITHAC1201/joicy/internal/users"
)

// localService talks to the credential database directly. This is the
// single-process mode: the session marker lives only in the CLI.
type localService struct {
	store *users.Service
	db    *sql.DB

	mu       sync.Mutex
	identity *users.Identity
}

// NewLocalAccountService opens dsn, brings the schema up to date and returns
// an AccountService over it.
func NewLocalAccountService(ctx context.Context, dsn string, opts users.Options, log logging.Logger) (AccountService, error) {
	db, dialect, err := storage.Open(dsn)
	if err != nil {
		return nil, err
	}

	m, err := storage.NewManager(dialect, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := users.NewService(db, m, opts, log)
	if err := store.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	return newLocalService(store, db), nil
}

func newLocalService(store *users.Service, db *sql.DB) *localService {
	return &localService{store: store, db: db}
}

func (s *localService) Register(ctx context.Context, username, email string, password []byte) (*users.Summary, error) {
	return s.store.Register(ctx, username, email, string(password))
}

func (s *localService) Login(ctx context.Context, identifier string, password []byte) (*users.Identity, error) {
	identity, err := s.store.Authenticate(ctx, identifier, string(password))
	if err != nil {
		return nil, err
	}
	s.setIdentity(identity)
	return identity, nil
}

func (s *localService) setIdentity(identity *users.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
}

// Logout forgets the identity; nothing is stored locally.
func (s *localService) Logout(context.Context) error {
	s.setIdentity(nil)
	return nil
}

func (s *localService) WhoAmI(context.Context) (*users.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil, common.ErrorUnauthorized
	}
	identity := *s.identity
	return &identity, nil
}

func (s *localService) ListUsers(ctx context.Context) ([]users.Summary, error) {
	return s.store.ListAll(ctx)
}

// DeleteUser also ends the local session when it belonged to the deleted
// user.
func (s *localService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if deleted && s.identity != nil && s.identity.ID == id {
		s.identity = nil
	}
	s.mu.Unlock()

	return deleted, nil
}

func (s *localService) Stats(ctx context.Context) (*users.Stats, error) {
	return s.store.Stats(ctx)
}

func (s *localService) Close() error {
	return s.db.Close()
}
