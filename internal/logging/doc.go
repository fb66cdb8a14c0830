// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package logging provides centralized zerolog-based structured logging for
// the skipper. It implements a unified logging layer using zerolog, providing
// zero-allocation structured JSON logging for production and human-readable
// console output for development.
// # Overview
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for production (machine-parseable)
//   - Console output format for development (human-readable)
//   - Global logger configuration via Init(Config)
//   - Context-aware logging with correlation ID propagation
//   - slog adapter for Suture v4 integration
//   - Decision logging for skip/volume/binge/commander outcomes
// # Quick Start
//	import "github.com/mdhiggins-go/plexautoskip-go/internal/logging"
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Caller: false,
//	})
//	// Log messages with structured fields
//	logging.Info().Str("session_key", sk).Msg("session added")
//	logging.Error().Err(err).Str("player", id).Msg("commander rpc failed")
//	// Context-aware logging
//	logging.Ctx(ctx).Info().Str("correlation_id", cid).Msg("processing alert")
// # Configuration
// Environment Variables:
//	FUZZ_MODE   - "1" limits the default logger to fatal level
// Level, format and caller are not read from the environment.
// Programmatic Configuration:
//	logging.Init(logging.Config{
//	    Level:     "debug",    // trace, debug, info, warn, error, fatal
//	    Format:    "console",  // json or console
//	    Caller:    true,       // Include caller info
//	    Timestamp: true,       // Include timestamps
//	    Output:    os.Stderr,  // Output writer
//	})
// # Log Levels
// Supported log levels (from most to least verbose):
//	trace  - Very detailed diagnostic information
//	debug  - Detailed diagnostic information
//	info   - General operational information (default)
//	warn   - Warning conditions that should be addressed
//	error  - Error conditions requiring attention
//	fatal  - Fatal errors that terminate the program
//	panic  - Panic conditions that crash the program
// # Structured Logging Best Practices
// Always terminate log chains with .Msg() or .Send():
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
// Use structured fields instead of string formatting:
//	// Good - structured, searchable, efficient
//	logging.Info().
//	    Str("session_key", sk).
//	    Int("skip_next_count", n).
//	    Dur("elapsed", duration).
//	    Msg("binge inhibitor updated")
//	// Avoid - unstructured, harder to parse
//	logging.Info().Msgf("session %s skip_next_count=%d in %v", sk, n, duration)
// # Component Loggers
// Create component-specific loggers with default fields:
//	// Create a logger for the commander component
//	commanderLogger := logging.With().Str("component", "commander").Logger()
//	commanderLogger.Info().Msg("seek dispatched")
//	commanderLogger.Error().Err(err).Msg("seek failed")
// # Context-Aware Logging
// Propagate request context through logging:
//	// Extract correlation ID from context
//	logger := logging.Ctx(ctx)
//	logger.Info().Msg("Processing alert")
// # slog Adapter
// The package provides an slog adapter for libraries that require slog.Logger:
//	slogLogger := logging.NewSlogLogger()
//	// Use slogLogger with Suture or other slog-compatible libraries
// # Decision Logging
// The skip engine and commander log their runtime decisions through a
// dedicated DecisionLogger that carries correlation IDs automatically:
//	d := logging.NewDecisionLogger()
//	d.LogSkip(ctx, sessionKey, "chapter", seekOrigin, seekTarget)
//	d.LogCommanderFailed(ctx, sessionKey, "seek", "transient", err)
// # Output Formats
// JSON Format (Production):
//	{"level":"info","time":"2025-01-03T10:30:00Z","message":"skip issued","session_key":"42"}
// Console Format (Development):
//	10:30:00 INF skip issued session_key=42
// # Thread Safety
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
// # Testing
// Create test loggers that capture output:
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
// # See Also
//   - github.com/rs/zerolog: Underlying logging library
package logging
