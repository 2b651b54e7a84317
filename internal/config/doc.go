// Package config loads runtime configuration for the rolodex CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables with the ROLODEX_ prefix (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the auth backend
//	-s string   storage driver: sqlite, postgres or s3
//	-v string   log level: debug, info, warn, error
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the latency bounds, so values can
// be either strings like "800ms" or integer nanoseconds:
//
//	{
//	  "backend_base_url": "http://localhost:8000",
//	  "storage": "sqlite",
//	  "sqlite_dsn": "rolodex.db",
//	  "latency_min": "0s",
//	  "latency_max": "800ms",
//	  "log_level": "info"
//	}
package config
