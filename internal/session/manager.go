// Package session keys authenticated identities by token. A token is an
// HS256 JWT whose jti names a server-side session record; revoking the record
// logs the token out even before it expires.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/users"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Store persists session records by id.
type Store interface {
	Save(ctx context.Context, id string, identity users.Identity, ttl time.Duration) error
	// Load returns common.ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (users.Identity, error)
	Delete(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, userID int64) error
}

type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	// loads collapses concurrent lookups of the same session id.
	loads singleflight.Group
}

func NewManager(store Store, secret []byte, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl, now: time.Now}
}

// Issue opens a session for identity and returns its token.
func (m *Manager) Issue(ctx context.Context, identity users.Identity) (string, error) {
	id := uuid.NewString()

	token, err := GenerateToken(id, identity.ID, m.secret, m.now(), m.ttl)
	if err != nil {
		return "", err
	}
	if err := m.store.Save(ctx, id, identity, m.ttl); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve returns the identity behind token.
func (m *Manager) Resolve(ctx context.Context, token string) (users.Identity, error) {
	claims, err := ParseToken(token, m.secret)
	if err != nil {
		return users.Identity{}, err
	}

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own ctx ends.
	loadCtx := context.WithoutCancel(ctx)
	ch := m.loads.DoChan(claims.ID, func() (any, error) {
		return m.store.Load(loadCtx, claims.ID)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return users.Identity{}, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return users.Identity{}, res.Err
	}
	identity := res.Val.(users.Identity)

	if uid, err := claims.UserID(); err != nil || uid != identity.ID {
		return users.Identity{}, common.ErrInvalidToken
	}

	return identity, nil
}

// Revoke ends the session behind token. Revoking an already revoked or
// expired session is not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := parseIgnoringExpiry(token, m.secret)
	if err != nil {
		return err
	}

	if err := m.store.Delete(ctx, claims.ID); err != nil && !errors.Is(err, common.ErrSessionNotFound) {
		return err
	}
	return nil
}

// RevokeUser ends every session of userID.
func (m *Manager) RevokeUser(ctx context.Context, userID int64) error {
	return m.store.DeleteUser(ctx, userID)
}
