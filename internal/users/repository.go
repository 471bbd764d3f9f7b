package users

import (
	"context"
	"database/sql"
	"time"

	"github.com/ANITHAC1201/joicy/internal/dbx"
)

// Repository is the storage contract of the credential store.
//
// Create must insert in a single statement and translate a unique violation
// into common.ErrDuplicateUsername or common.ErrDuplicateEmail.
// FindByIdentifier returns common.ErrorNotFound when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// Store hands out repositories bound to a DBTX and owns the schema.
type Store interface {
	Users(db dbx.DBTX) Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
