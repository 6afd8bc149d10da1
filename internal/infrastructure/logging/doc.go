// Package logging provides structured logging for the Gray Logic Hub.
//
// This package wraps Go's standard log/slog package so every component
// logs with the same handler, level and default fields.
//
// # Features
//
//   - JSON output for machines, text output for people
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
//	logging:
//	  level: "warn"      # debug, info, warn, error
//	  format: "text"     # json, text
//	  output: "stderr"   # stdout, stderr, discard
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	h.SetLogger(logger.With("component", "hub"))
//
// *Logger satisfies the small Logger interfaces declared by the hub,
// strategy, audit and mqtt packages.
package logging
