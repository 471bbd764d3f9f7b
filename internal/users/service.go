// Package users is the FlyScope credential store: registration,
// authentication, deletion and listing of user records, backed by a
// Repository over SQLite or PostgreSQL.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/cryptox"
	"github.com/ANITHAC1201/joicy/internal/dbx"
	"github.com/ANITHAC1201/joicy/internal/logging"
)

// DefaultAdminUsernames are granted the admin role when they register.
var DefaultAdminUsernames = []string{"admin", "administrator"}

// Options tune the Service.
type Options struct {
	// AdminUsernames get RoleAdmin at registration (case-insensitive).
	AdminUsernames []string

	// UniformAuthErrors reports an unknown identifier as
	// ErrInvalidCredentials, after spending the same derivation work as a
	// real check.
	UniformAuthErrors bool
}

type Service struct {
	db      *sql.DB
	store   Store
	admins  map[string]struct{}
	uniform bool
	log     logging.Logger
	now     func() time.Time
}

func NewService(db *sql.DB, store Store, opts Options, log logging.Logger) *Service {
	admins := make(map[string]struct{}, len(opts.AdminUsernames))
	for _, name := range opts.AdminUsernames {
		admins[strings.ToLower(name)] = struct{}{}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		db:      db,
		store:   store,
		admins:  admins,
		uniform: opts.UniformAuthErrors,
		log:     log.With("module", "users"),
		now:     time.Now,
	}
}

// Initialize brings the schema up to date. Safe to call on every start.
func (s *Service) Initialize(ctx context.Context) error {
	if err := s.store.RunMigrations(ctx, s.db); err != nil {
		return s.unavailable(ctx, "initialize", err)
	}
	return nil
}

// Register creates a user. The insert is a single statement; a collision on
// username or email surfaces as ErrDuplicateUsername or ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, username, email, password string) (*Summary, error) {
	if username == "" || email == "" || password == "" {
		return nil, common.ErrEmptyField
	}
	if n := utf8.RuneCountInString(username); n < common.MinUsernameLen || n > common.MaxUsernameLen {
		return nil, common.ErrInvalidUsernameLen
	}

	salt := cryptox.NewSalt()
	hash, err := cryptox.HashPassword(password, salt)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         s.roleFor(username),
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.store.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) || errors.Is(err, common.ErrDuplicateEmail) {
			s.log.Info(ctx, "registration rejected", "reason", err.Error())
			return nil, err
		}
		return nil, s.unavailable(ctx, "register", err)
	}

	s.log.Info(ctx, "user registered", "user_id", created.ID, "role", created.Role)

	sum := created.Summary()
	return &sum, nil
}

// Authenticate checks password against the record whose username or email
// equals identifier.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (*Identity, error) {
	user, err := s.store.Users(s.db).FindByIdentifier(ctx, identifier)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, s.unavailable(ctx, "authenticate", err)
		}
		if s.uniform {
			// burn one derivation so timing matches a wrong password
			cryptox.VerifyPassword(password, cryptox.NewSalt(), "")
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrUserNotFound
	}

	if !cryptox.VerifyPassword(password, user.Salt, user.PasswordHash) {
		s.log.Info(ctx, "authentication failed", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	id := user.Identity()
	return &id, nil
}

// Delete removes the user with the given id and reports whether a row went
// away. A missing id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.Users(s.db).DeleteByID(ctx, id)
	if err != nil {
		return false, s.unavailable(ctx, "delete", err)
	}
	if deleted {
		s.log.Info(ctx, "user deleted", "user_id", id)
	}
	return deleted, nil
}

// ListAll returns every user, newest first.
func (s *Service) ListAll(ctx context.Context) ([]Summary, error) {
	list, err := s.store.Users(s.db).List(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "list", err)
	}

	result := make([]Summary, 0, len(list))
	for i := range list {
		result = append(result, list[i].Summary())
	}
	return result, nil
}

// Stats counts all users, those registered since the start of the current
// UTC day, and those registered in the last seven days.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	var st Stats
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.store.Users(tx)

		var err error
		if st.Total, err = repo.Count(ctx); err != nil {
			return err
		}
		if st.Today, err = repo.CountSince(ctx, dayStart); err != nil {
			return err
		}
		st.ThisWeek, err = repo.CountSince(ctx, weekAgo)
		return err
	})
	if err != nil {
		return nil, s.unavailable(ctx, "stats", err)
	}

	return &st, nil
}

// IsAdminName reports whether username is on the bootstrap admin list.
func (s *Service) IsAdminName(username string) bool {
	_, ok := s.admins[strings.ToLower(username)]
	return ok
}

func (s *Service) roleFor(username string) string {
	if s.IsAdminName(username) {
		return common.RoleAdmin
	}
	return common.RoleUser
}

func (s *Service) unavailable(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "store failure", "op", op, "error", err)
	return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
}
