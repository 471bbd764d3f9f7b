package users

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ANITHAC1201/joicy/internal/dbx"
	"github.com/ANITHAC1201/joicy/internal/migrations"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// sqliteTestStore applies the Up half of each embedded SQLite migration
// directly, without goose.
type sqliteTestStore struct{}

func (sqliteTestStore) Users(db dbx.DBTX) Repository { return NewSQLiteRepository(db) }

func (sqliteTestStore) RunMigrations(ctx context.Context, db *sql.DB) error {
	files, err := fs.Glob(migrations.FS, migrations.SQLiteDir+"/*.sql")
	if err != nil {
		return err
	}
	var applied int
	_ = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pragma_table_info('users')`).Scan(&applied)
	if applied > 0 {
		return nil
	}
	for _, f := range files {
		b, err := fs.ReadFile(migrations.FS, f)
		if err != nil {
			return err
		}
		up, _, _ := strings.Cut(string(b), "-- +goose Down")
		if _, err := db.ExecContext(ctx, strings.TrimPrefix(strings.TrimSpace(up), "-- +goose Up")); err != nil {
			return err
		}
	}
	return nil
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "users.db")+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestService(t *testing.T, opts Options) (*Service, *sql.DB) {
	t.Helper()
	db := openTestDB(t)
	s := NewService(db, sqliteTestStore{}, opts, nil)
	require.NoError(t, s.Initialize(context.Background()))
	return s, db
}

// fixedClock returns a clock pinned at t that can be moved.
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }
