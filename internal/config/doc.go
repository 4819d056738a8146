// Package config loads tally's configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tally/config.toml
//  3. If the file doesn't exist, use defaults
//  4. If the file exists but a field is missing or empty, use its default
//
// # TOML Format
//
//	api_url = "http://localhost:5001/api"
//	items_per_page = 5
//	request_timeout_seconds = 5
//	refresh_seconds = 0
//	log_dir = "~/.local/share/tally/logs"
//	log_level = "info"
//
// Every field is optional. String values are trimmed and log_dir gets tilde
// expansion. items_per_page and request_timeout_seconds fall back to their
// defaults when zero or negative. refresh_seconds = 0 turns periodic refresh
// off; a negative value is an error.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing file is not an error, so
// tally runs against a local service with no setup at all.
package config
