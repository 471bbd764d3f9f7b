package config

import (
	"flag"
	"io"
	"time"

	"github.com/ANITHAC1201/joicy/internal/flagx"
)

// parseFlags overlays command-line flags on config. Flags other than the ones
// below are filtered out first, so -c/-config never reach this FlagSet.
//
//	-a string   gRPC bind address
//	-d string   database DSN (SQLite path or postgres:// URL)
//	-s string   session signing key
//	-t int      session lifetime, minutes
//	-m string   admin usernames, comma separated
//	-u          uniform authentication errors
//	-r string   Redis URL for sessions (empty = in memory)
//	-l string   log level
//	-f string   log format (text or json)
//
// An unparsable flag panics, as does a bad JSON file.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-m", "-u", "-r", "-l", "-f"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session signing key")
	ttl := fs.Int("t", int(config.SessionTTL.Minutes()), "session lifetime (in minutes)")

	admins := flagx.StringList(config.AdminUsernames)
	fs.Var(&admins, "m", "admin usernames, comma separated")

	fs.BoolVar(&config.UniformAuthErrors, "u", config.UniformAuthErrors, "report unknown users as invalid credentials")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL for sessions")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*ttl) * time.Minute
	config.AdminUsernames = []string(admins)
}
