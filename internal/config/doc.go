// Package config loads the statekit configuration file.
//
// # Overview
//
// statekit runs without any configuration. A config file only moves the
// tailed log, changes the poll cadence, or turns on the optional debug server
// and remote source.
//
// # Resolution Order
//
//  1. The path passed to Load, when non-empty
//  2. ~/.config/statekit/config.toml
//  3. Default() when the file does not exist
//
// Blank or zero fields keep their defaults. Negative tail_lines or
// poll_interval values are rejected.
//
// # Formats
//
// The file extension picks the decoder. ".yaml" and ".yml" use yaml.v3,
// anything else uses go-toml/v2. Both accept the same keys:
//
//	log_path      = "~/.local/state/statekit/statekit.log"
//	tail_lines    = 200
//	poll_interval = 2            # seconds
//	log_file      = "~/.local/state/statekit/statekit.log"
//	debug_addr    = "127.0.0.1:7490"
//	source_addr   = "127.0.0.1:7487"
//	source_path   = "/api/state"
//
// When log_path is not set it follows log_file, so the log panel shows
// statekit's own log. That includes statekit's poll warnings, one per failed
// poll, spaced out by the poller's backoff.
//
// # Path Expansion
//
// ExpandPath trims whitespace, expands a leading "~" and returns an absolute
// path. It is applied to the config location, log_path and log_file.
//
// # Errors
//
// Load fails on path expansion, read, parse and validation errors. A missing
// file is not an error.
package config
