// Package config loads runtime configuration for the Orator CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-d string   path of the local database file
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals and timeouts, so values
// can be either strings like "5s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.orator.example",
//	  "database_path": "orator.db",
//	  "request_timeout": "5s",
//	  "auth_timeout": "15s",
//	  "upload_timeout": "2m",
//	  "poll_interval": "5s",
//	  "poll_max_attempts": 240,
//	  "online_check_interval": "3s"
//	}
//
// Primary API
//
//   - type Config                     — holds the CLI's runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
