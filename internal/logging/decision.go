// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// DecisionLogger provides structured logging for the skip engine's and
// commander's runtime decisions: skips, volume changes, binge blocks, and
// commander RPC outcomes. Every entry carries the session's correlation ID
// when one is present in the context.
type DecisionLogger struct {
	logger zerolog.Logger
}

// NewDecisionLogger creates a logger configured for decision logging.
func NewDecisionLogger() *DecisionLogger {
	return &DecisionLogger{
		logger: With().Str("component", "skipengine").Logger(),
	}
}

// NewDecisionLoggerWithLogger creates a DecisionLogger with a custom logger.
//nolint:gocritic // zerolog.Logger is designed to be passed by value (copy-on-write semantics)
func NewDecisionLoggerWithLogger(logger zerolog.Logger) *DecisionLogger {
	return &DecisionLogger{
		logger: logger.With().Str("component", "skipengine").Logger(),
	}
}

// WithFields returns a new DecisionLogger with additional default fields.
func (d *DecisionLogger) WithFields(fields map[string]interface{}) *DecisionLogger {
	ctx := d.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &DecisionLogger{logger: ctx.Logger()}
}

func (d *DecisionLogger) loggerWithContext(ctx context.Context) zerolog.Logger {
	logCtx := d.logger.With()
	if correlationID := CorrelationIDFromContext(ctx); correlationID != "" {
		logCtx = logCtx.Str("correlation_id", correlationID)
	}
	return logCtx.Logger()
}

// LogAlertReceived logs an alert read off the media server's event stream.
func (d *DecisionLogger) LogAlertReceived(ctx context.Context, sessionKey, alertType string) {
	d.loggerWithContext(ctx).Info().
		Str("session_key", sessionKey).
		Str("alert_type", alertType).
		Msg("alert received")
}

// LogSessionAdded logs a newly tracked playback session.
func (d *DecisionLogger) LogSessionAdded(ctx context.Context, sessionKey, ratingKey string) {
	d.loggerWithContext(ctx).Info().
		Str("session_key", sessionKey).
		Str("rating_key", ratingKey).
		Msg("session added")
}

// LogSessionRemoved logs a session leaving the tracked table, with the reason.
func (d *DecisionLogger) LogSessionRemoved(ctx context.Context, sessionKey, reason string) {
	d.loggerWithContext(ctx).Info().
		Str("session_key", sessionKey).
		Str("reason", reason).
		Msg("session removed")
}

// LogSkip logs a skip command, the marker source that produced it, and the
// seek origin/target pair.
func (d *DecisionLogger) LogSkip(ctx context.Context, sessionKey, source string, seekOrigin, seekTarget int64) {
	d.loggerWithContext(ctx).Info().
		Str("session_key", sessionKey).
		Str("source", source).
		Int64("seek_origin_ms", seekOrigin).
		Int64("seek_target_ms", seekTarget).
		Msg("skip issued")
}

// LogVolumeChange logs a volume-leveling command.
func (d *DecisionLogger) LogVolumeChange(ctx context.Context, sessionKey, direction string, level int) {
	d.loggerWithContext(ctx).Info().
		Str("session_key", sessionKey).
		Str("direction", direction).
		Int("level", level).
		Msg("volume changed")
}

// LogBingeBlock logs a skip suppressed by the binge inhibitor.
func (d *DecisionLogger) LogBingeBlock(ctx context.Context, sessionKey string, skipNextCount int) {
	d.loggerWithContext(ctx).Debug().
		Str("session_key", sessionKey).
		Int("skip_next_count", skipNextCount).
		Msg("binge block suppressed skip")
}

// LogCommanderFailed logs a commander RPC failure, tagged with the error
// taxonomy category.
func (d *DecisionLogger) LogCommanderFailed(ctx context.Context, sessionKey, operation, category string, err error) {
	d.loggerWithContext(ctx).Warn().
		Str("session_key", sessionKey).
		Str("operation", operation).
		Str("category", category).
		Err(err).
		Msg("commander rpc failed")
}

// LogCircuitOpen logs a circuit breaker tripping for a player.
func (d *DecisionLogger) LogCircuitOpen(ctx context.Context, player string) {
	d.loggerWithContext(ctx).Warn().
		Str("player", player).
		Msg("commander circuit breaker opened")
}
