package storage

import (
	"context"
	"database/sql"

	"github.com/ANITHAC1201/joicy/internal/dbx"
	"github.com/ANITHAC1201/joicy/internal/logging"
	"github.com/ANITHAC1201/joicy/internal/users"
)

// SQLiteManager vends SQLite-backed repositories.
type SQLiteManager struct {
	log logging.Logger
}

func (m *SQLiteManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return Migrate(ctx, db, SQLite, m.log)
}

// PostgresManager vends PostgreSQL-backed repositories.
type PostgresManager struct {
	log logging.Logger
}

func (m *PostgresManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return Migrate(ctx, db, Postgres, m.log)
}
