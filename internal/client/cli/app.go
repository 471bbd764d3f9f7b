package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ANITHAC1201/joicy/internal/client/client"
	"github.com/ANITHAC1201/joicy/internal/client/config"
	"github.com/ANITHAC1201/joicy/internal/client/services"
	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/logging"
	"github.com/ANITHAC1201/joicy/internal/users"
)

type App struct {
	config   *config.Config
	accounts services.AccountService
	identity *users.Identity
	reader   *bufio.Reader
	out      io.Writer
	logger   logging.Logger
}

// NewApp builds the CLI. With a server address configured it talks to the
// accounts server, otherwise it opens the database named by DatabaseDSN.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, "text", os.Stderr)
	if err != nil {
		return nil, err
	}

	var accounts services.AccountService
	if c.Remote() {
		gc, err := client.NewGRPCClient(c.ServerEndpointAddr)
		if err != nil {
			return nil, err
		}
		if err := ping(ctx, gc, c.RequestTimeout); err != nil {
			_ = gc.Close()
			return nil, fmt.Errorf("accounts server %s: %w", c.ServerEndpointAddr, err)
		}
		accounts = services.NewRemoteAccountService(gc)
		logger.Info(ctx, "using accounts server", "addr", c.ServerEndpointAddr)
	} else {
		opts := users.Options{AdminUsernames: c.AdminUsernames, UniformAuthErrors: c.UniformAuthErrors}
		accounts, err = services.NewLocalAccountService(ctx, c.DatabaseDSN, opts, logger)
		if err != nil {
			return nil, err
		}
		logger.Info(ctx, "using local database", "dsn", c.DatabaseDSN)
	}

	return newApp(c, accounts, os.Stdin, os.Stdout, logger), nil
}

// ping fails fast when the server cannot be reached.
func ping(ctx context.Context, gc *client.GRPCClient, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return gc.Ping(ctx)
}

func newApp(c *config.Config, accounts services.AccountService, in io.Reader, out io.Writer, logger logging.Logger) *App {
	return &App{
		config:   c,
		accounts: accounts,
		reader:   bufio.NewReader(in),
		out:      out,
		logger:   logger.With("module", "cli"),
	}
}

// Run starts the REPL and closes the account service when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.accounts.Close(); err != nil {
			a.logger.Warn(ctx, "close failed", "error", err)
		}
	}()

	printlnFn("Welcome to FlyScope (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.identity != nil
}

func (a *App) isAdmin() bool {
	return a.identity != nil && a.identity.Role == common.RoleAdmin
}

func (a *App) status() string {
	if a.identity == nil {
		return ""
	}
	return "@" + a.identity.Username
}

// withTimeout bounds a single command's calls to the account service.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
