// Package server wires the accounts server: configuration, logging, the
// credential store, the session store and the gRPC endpoint. It stops
// gracefully on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ANITHAC1201/joicy/internal/logging"
	"github.com/ANITHAC1201/joicy/internal/server/config"
	"github.com/ANITHAC1201/joicy/internal/session"
	"github.com/ANITHAC1201/joicy/internal/storage"
	"github.com/ANITHAC1201/joicy/internal/users"

	gs "github.com/ANITHAC1201/joicy/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	users    *users.Service
	sessions *session.Manager
	closers  []io.Closer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, c.LogFormat, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, dialect, err := storage.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app := &App{config: c, logger: logger, db: db, closers: []io.Closer{db}}

	manager, err := storage.NewManager(dialect, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.users = users.NewService(db, manager, users.Options{
		AdminUsernames:    c.AdminUsernames,
		UniformAuthErrors: c.UniformAuthErrors,
	}, logger)

	if err := app.users.Initialize(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := app.sessionStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.sessions = session.NewManager(store, []byte(c.SecretKey), c.SessionTTL)

	logger.Info(ctx, "Storage ready", "dialect", string(dialect), "redis_sessions", c.RedisURL != "")

	return app, nil
}

func (app *App) sessionStore(ctx context.Context) (session.Store, error) {
	if app.config.RedisURL == "" {
		return session.NewMemoryStore(), nil
	}

	rdb, err := session.NewRedisClient(ctx, app.config.RedisURL)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, rdb)

	return session.NewRedisStore(rdb), nil
}

// Close releases the database and Redis connections.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.logger.Warn(context.Background(), "close", "error", err)
		}
	}
	app.closers = nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.users, app.sessions)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	started := time.Now()

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.Close()
	app.logger.Info(context.Background(), "App stopped", "uptime", time.Since(started).Round(time.Second))
}
