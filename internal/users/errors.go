package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUniqueViolation = "23505"

	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// mapSQLiteError turns a unique violation into the matching duplicate
// sentinel. SQLite names the offending column, not the constraint.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()

	var se *sqlite.Error
	unique := errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	if unique || strings.Contains(msg, "UNIQUE constraint failed") {
		switch {
		case strings.Contains(msg, "users.username"):
			return common.ErrDuplicateUsername
		case strings.Contains(msg, "users.email"):
			return common.ErrDuplicateEmail
		}
	}

	return fmt.Errorf("db error: %w", err)
}

func mapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case usernameConstraint:
			return common.ErrDuplicateUsername
		case emailConstraint:
			return common.ErrDuplicateEmail
		}
	}

	return fmt.Errorf("db error: %w", err)
}

// preferUsername re-checks an email collision. Engines pick which unique
// index fails first, so a taken username is looked up explicitly and wins.
// If the lookup itself fails (an aborted Postgres transaction, say) err is
// returned unchanged.
func preferUsername(ctx context.Context, db dbx.DBTX, query, username string, err error) error {
	if !errors.Is(err, common.ErrDuplicateEmail) {
		return err
	}

	var taken bool
	if qerr := db.QueryRowContext(ctx, query, username).Scan(&taken); qerr != nil {
		return err
	}
	if taken {
		return common.ErrDuplicateUsername
	}
	return err
}
