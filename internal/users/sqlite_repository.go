package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (username, email, password_hash, salt, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Salt, user.Role,
		user.CreatedAt.UTC().Format(TimestampLayout))
	if err != nil {
		return nil, preferUsername(ctx, r.db,
			`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, user.Username, mapSQLiteError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.ID = id

	return user, nil
}

// FindByIdentifier matches on username or email. A username match is
// preferred when the identifier hits two different rows.
func (r *SQLiteRepository) FindByIdentifier(ctx context.Context, identifier string) (*User, error) {
	query := `SELECT id, username, email, password_hash, salt, role, created_at
		FROM users
		WHERE username = ? OR email = ?
		ORDER BY CASE WHEN username = ? THEN 0 ELSE 1 END
		LIMIT 1`

	var (
		u       User
		created string
	)
	err := r.db.QueryRowContext(ctx, query, identifier, identifier, identifier).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Salt, &u.Role, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if u.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]User, error) {
	query := `SELECT id, username, email, password_hash, salt, role, created_at
		FROM users
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]User, 0)
	for rows.Next() {
		var (
			u       User
			created string
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Salt, &u.Role, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if u.CreatedAt, err = parseTimestamp(created); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE created_at >= ?`,
		since.UTC().Format(TimestampLayout)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		// rows written by other tools may use plain RFC 3339
		if t2, err2 := time.Parse(time.RFC3339Nano, s); err2 == nil {
			return t2.UTC(), nil
		}
		return time.Time{}, fmt.Errorf("bad created_at %q: %w", s, err)
	}
	return t.UTC(), nil
}
