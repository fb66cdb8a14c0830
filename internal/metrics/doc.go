// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package metrics provides Prometheus instrumentation for the skipper.

# Overview

The package exposes gauges and counters for:
  - Active and ignored session table sizes
  - Skip commands, labeled "marker" for seeks and "skip_next" for
    play-queue advances
  - Volume-leveling commands
  - Alerts received from the media server event stream
  - Alert listener connectivity and reconnect attempts
  - Commander RPC latency and failures
  - Per-player circuit breaker state
  - Binge-inhibitor blocks

# Metrics Endpoint

Wire a Prometheus handler into the process, typically on a small internal
HTTP mux dedicated to health/metrics rather than any public surface:

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

# Usage

	metrics.RecordSkip("marker")
	metrics.RecordVolumeChange("lower")
	metrics.SetListenerConnected(true)
	metrics.RecordCommanderRPC("seek", time.Since(start), "")

# Cardinality

Labels are drawn from small, fixed sets (skip kind, RPC operation, error
taxonomy category, player identifier) to keep series counts bounded.
*/
package metrics
