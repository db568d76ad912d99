// Package config loads runtime configuration for the notes CLI.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string     base URL of the notes server
//	-t duration   per-request timeout
//
// # JSON schema
//
// Durations are timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s"
//	}
package config
