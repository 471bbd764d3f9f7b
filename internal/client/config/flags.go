package config

import (
	"flag"
	"io"
	"time"

	"github.com/ANITHAC1201/joicy/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Arguments it does not know are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-m", "-u", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the accounts server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN for local mode")

	admins := flagx.StringList(cfg.AdminUsernames)
	fs.Var(&admins, "m", "admin usernames, comma separated")

	fs.BoolVar(&cfg.UniformAuthErrors, "u", cfg.UniformAuthErrors, "report unknown users as invalid credentials")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AdminUsernames = []string(admins)
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
