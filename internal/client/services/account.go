// Package services contains application services for the FlyScope CLI.
// AccountService is the CLI's view of the credential store; it runs either
// in-process over users.Service or against a remote accounts server.
package services

import (
	"context"

	"github.com/ANITHAC1201/joicy/internal/users"
)

// AccountService defines the account operations available to the CLI.
//
// Contract:
//   - Login returns the authenticated identity; the caller keeps it as the
//     session marker and drops it on Logout.
//   - WhoAmI re-reads the current identity. An error means the session is
//     gone (logged out, revoked or expired).
//   - ListUsers, DeleteUser and Stats are admin operations. The caller
//     checks the role before invoking them.
//   - Close releases the database or the connection.
type AccountService interface {
	Register(ctx context.Context, username, email string, password []byte) (*users.Summary, error)
	Login(ctx context.Context, identifier string, password []byte) (*users.Identity, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (*users.Identity, error)
	ListUsers(ctx context.Context) ([]users.Summary, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context) (*users.Stats, error)
	Close() error
}
