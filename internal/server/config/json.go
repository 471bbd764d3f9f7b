package config

import (
	"encoding/json"
	"os"

	"github.com/ANITHAC1201/joicy/internal/flagx"
	"github.com/ANITHAC1201/joicy/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Pointer fields tell an absent key
// from a zero value, so only keys present in the file override defaults.
// Durations accept "24h" or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC  *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN       *string         `json:"database_dsn"`
	SecretKey         *string         `json:"secret_key"`
	SessionTTL        *timex.Duration `json:"session_ttl"`
	AdminUsernames    []string        `json:"admin_usernames"`
	UniformAuthErrors *bool           `json:"uniform_auth_errors"`
	RedisURL          *string         `json:"redis_url"`
	LogLevel          *string         `json:"log_level"`
	LogFormat         *string         `json:"log_format"`
}

// parseJson overlays the file named by -c/-config (or FLYSCOPE_CONFIG) on
// config. No path means nothing to do; an unreadable or invalid file panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.AdminUsernames != nil {
		config.AdminUsernames = c.AdminUsernames
	}
	if c.UniformAuthErrors != nil {
		config.UniformAuthErrors = *c.UniformAuthErrors
	}
	if c.RedisURL != nil {
		config.RedisURL = *c.RedisURL
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.LogFormat != nil {
		config.LogFormat = *c.LogFormat
	}
}
