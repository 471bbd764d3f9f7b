// Package config handles configuration for the accounts server: defaults,
// JSON overlay and command-line flags, applied in that order.
package config

import (
	"os"
	"time"

	"github.com/ANITHAC1201/joicy/internal/users"
)

// Config holds runtime settings for the FlyScope accounts server.
//
// DatabaseDSN is a SQLite path or a postgres:// URL. An empty RedisURL keeps
// sessions in process memory.
type Config struct {
	EndpointAddrGRPC  string
	DatabaseDSN       string
	SecretKey         string
	SessionTTL        time.Duration
	AdminUsernames    []string
	UniformAuthErrors bool
	RedisURL          string
	LogLevel          string
	LogFormat         string
}

// LoadDefaults populates Config with development defaults. SecretKey in
// particular must be overridden outside of development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "users.db"
	c.SecretKey = "secretKey"
	c.SessionTTL = 24 * time.Hour
	c.AdminUsernames = append([]string(nil), users.DefaultAdminUsernames...)
	c.UniformAuthErrors = false
	c.RedisURL = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, the optional JSON file and the
// process arguments.
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
