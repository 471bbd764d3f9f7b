package config

import (
	"encoding/json"
	"os"

	"github.com/ANITHAC1201/joicy/internal/flagx"
	"github.com/ANITHAC1201/joicy/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current value alone.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	DatabaseDSN        *string         `json:"database_dsn"`
	AdminUsernames     []string        `json:"admin_usernames"`
	UniformAuthErrors  *bool           `json:"uniform_auth_errors"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config or
// FLYSCOPE_CONFIG. Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.AdminUsernames != nil {
		cfg.AdminUsernames = jc.AdminUsernames
	}
	if jc.UniformAuthErrors != nil {
		cfg.UniformAuthErrors = *jc.UniformAuthErrors
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
