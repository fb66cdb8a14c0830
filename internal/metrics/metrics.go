// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics exposes Prometheus instrumentation for the skipper: session
// tracking, skip/volume decisions, commander RPC outcomes, and the alert
// listener's connection health.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveSessions tracks the number of sessions currently tracked by the
	// skip engine.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skipper_active_sessions",
			Help: "Current number of playback sessions tracked by the skip engine",
		},
	)

	// IgnoredSessions tracks the size of the skip engine's ignore list of
	// sessions it has declined to track.
	IgnoredSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skipper_ignored_sessions",
			Help: "Current number of sessions in the skip engine's ignore list",
		},
	)

	// SkipsTotal counts skip commands issued by the commander. Every seek is
	// labeled "marker", whichever rule produced it, and every play-queue
	// advance "skip_next".
	SkipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skipper_skips_total",
			Help: "Total number of skip commands issued",
		},
		[]string{"source"}, // marker, skip_next
	)

	// VolumeChangesTotal counts volume-leveling commands issued.
	VolumeChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skipper_volume_changes_total",
			Help: "Total number of volume adjustment commands issued",
		},
		[]string{"direction"}, // lower, restore
	)

	// AlertsReceivedTotal counts alerts read off the media server event
	// stream, labeled by notification type.
	AlertsReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skipper_alerts_received_total",
			Help: "Total number of alerts received from the media server",
		},
		[]string{"type"},
	)

	// ListenerReconnectsTotal counts alert listener reconnect attempts.
	ListenerReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skipper_listener_reconnects_total",
			Help: "Total number of alert listener reconnect attempts",
		},
	)

	// ListenerConnected reports whether the alert listener's websocket is
	// currently connected.
	ListenerConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skipper_listener_connected",
			Help: "1 if the alert listener websocket is connected, 0 otherwise",
		},
	)

	// CommanderRPCDuration tracks latency of seek/volume/advance RPCs to
	// player clients.
	CommanderRPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skipper_commander_rpc_duration_seconds",
			Help:    "Duration of commander RPCs to player clients",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // seek, volume, advance
	)

	// CommanderRPCErrors counts failed commander RPCs, labeled by the error
	// taxonomy category from the error-handling design.
	CommanderRPCErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skipper_commander_rpc_errors_total",
			Help: "Total number of commander RPC failures by category",
		},
		[]string{"operation", "category"},
	)

	// CircuitBreakerState mirrors the gobreaker state for each player the
	// commander has opened a breaker for (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skipper_circuit_breaker_state",
			Help: "Commander circuit breaker state per player",
		},
		[]string{"player"},
	)

	// BingeBlocksTotal counts playback starts where the binge inhibitor
	// suppressed skipping.
	BingeBlocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skipper_binge_blocks_total",
			Help: "Total number of episode starts where binge blocking suppressed a skip",
		},
	)
)

// RecordSkip records a skip command and the rule source that produced it.
func RecordSkip(source string) {
	SkipsTotal.WithLabelValues(source).Inc()
}

// RecordVolumeChange records a volume adjustment command.
func RecordVolumeChange(direction string) {
	VolumeChangesTotal.WithLabelValues(direction).Inc()
}

// RecordAlert records an alert received from the media server.
func RecordAlert(alertType string) {
	AlertsReceivedTotal.WithLabelValues(alertType).Inc()
}

// RecordCommanderRPC records the duration and outcome of a commander RPC.
func RecordCommanderRPC(operation string, duration time.Duration, category string) {
	CommanderRPCDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if category != "" {
		CommanderRPCErrors.WithLabelValues(operation, category).Inc()
	}
}

// SetListenerConnected updates the listener connectivity gauge.
func SetListenerConnected(connected bool) {
	if connected {
		ListenerConnected.Set(1)
	} else {
		ListenerConnected.Set(0)
	}
}
