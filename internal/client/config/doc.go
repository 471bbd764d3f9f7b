// Package config loads runtime configuration for the FlyScope CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or FLYSCOPE_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the accounts server (empty = local mode)
//	-d string   database DSN used in local mode
//	-m string   admin usernames, comma separated (local mode)
//	-u          uniform authentication errors (local mode)
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_dsn": "users.db",
//	  "admin_usernames": ["admin"],
//	  "uniform_auth_errors": false,
//	  "request_timeout": "5s",
//	  "log_level": "warn"
//	}
package config
