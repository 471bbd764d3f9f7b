// Package storage opens the credential database and vends the matching
// users.Store: repository constructors plus embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/ANITHAC1201/joicy/internal/filex"
	"github.com/ANITHAC1201/joicy/internal/logging"
	"github.com/ANITHAC1201/joicy/internal/migrations"
	"github.com/ANITHAC1201/joicy/internal/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Dialect names both the goose dialect and, via DriverName, the
// database/sql driver.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "pgx"
)

// DriverName returns the database/sql driver registered for d.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

func (d Dialect) migrationsDir() string {
	if d == Postgres {
		return migrations.PostgresDir
	}
	return migrations.SQLiteDir
}

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// DetectDialect picks Postgres for postgres:// and postgresql:// URLs and
// SQLite for everything else.
func DetectDialect(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return Postgres
	}
	return SQLite
}

// Open connects to dsn. The directory of a SQLite file is created if
// needed. SQLite pools are capped at one connection so that
// writes are serialized and in-memory databases stay alive.
func Open(dsn string) (*sql.DB, Dialect, error) {
	if dsn == "" {
		return nil, "", fmt.Errorf("empty database dsn")
	}

	dialect := DetectDialect(dsn)
	if dialect == SQLite {
		if path, ok := filex.SQLiteFilePath(dsn); ok {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, "", err
			}
		}
	}

	source := dsn
	if dialect == SQLite && !strings.Contains(dsn, "?") {
		source = dsn + "?" + sqlitePragmas
	}

	db, err := sql.Open(dialect.DriverName(), source)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	}

	return db, dialect, nil
}

// NewManager returns the users.Store for dialect. Migration output goes to
// log; a nil log discards it.
func NewManager(dialect Dialect, log logging.Logger) (users.Store, error) {
	switch dialect {
	case SQLite:
		return &SQLiteManager{log: log}, nil
	case Postgres:
		return &PostgresManager{log: log}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its base FS, dialect and logger in package globals.
var gooseMu sync.Mutex

// gooseLogger forwards goose's printf-style output to a logging.Logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

// Fatalf must not return; goose only calls it on states it cannot recover from.
func (g gooseLogger) Fatalf(format string, v ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	g.log.Error(g.ctx, msg, "component", "migrations")
	panic(msg)
}

// Migrate applies every pending migration for dialect, logging progress at
// debug level to log. A nil log silences goose.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, log logging.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if log == nil {
		goose.SetLogger(goose.NopLogger())
	} else {
		goose.SetLogger(gooseLogger{ctx: ctx, log: log})
	}
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dialect.migrationsDir()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
