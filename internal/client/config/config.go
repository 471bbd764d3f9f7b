package config

import (
	"os"
	"time"

	"github.com/ANITHAC1201/joicy/internal/users"
)

// Config holds runtime settings for the FlyScope CLI.
//
// With ServerEndpointAddr empty the CLI opens DatabaseDSN itself; otherwise
// every operation goes to the accounts server and the local-mode fields are
// ignored.
type Config struct {
	ServerEndpointAddr string
	DatabaseDSN        string
	AdminUsernames     []string
	UniformAuthErrors  bool
	RequestTimeout     time.Duration
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = ""
	c.DatabaseDSN = "users.db"
	c.AdminUsernames = append([]string(nil), users.DefaultAdminUsernames...)
	c.UniformAuthErrors = false
	c.RequestTimeout = 5 * time.Second
	c.LogLevel = "warn"
}

// Remote reports whether the CLI talks to an accounts server.
func (c *Config) Remote() bool {
	return c.ServerEndpointAddr != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
