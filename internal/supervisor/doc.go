// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package supervisor provides process supervision for the skipper using suture v4.

This package implements a small hierarchical supervisor tree that manages the
lifecycle of the long-running services described by the concurrency model: the
alert listener (a persistent websocket subscription to the media server's
event stream), the tick loop (a 1Hz session inspection pass), and the
command layer, which cmd/server uses for the metrics HTTP server. Seek and
volume commands are issued synchronously from the tick loop and alert
handling; no service in the tree runs them.

	RootSupervisor ("skipper")
	├── AlertSupervisor ("alert-layer")
	│   └── alert-listener
	├── TickSupervisor ("tick-layer")
	│   └── tick-loop
	└── CommandSupervisor ("command-layer")
	    └── metrics-server

This hierarchy ensures that a panic in the tick loop does not tear down the
alert listener's websocket connection, and that a crashed listener is
restarted without restarting the session inspection loop. Each layer
restarts independently with its own failure counter.

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return nil for a clean stop (no restart); return an error to have the
supervisor restart the service after FailureBackoff, subject to the
FailureThreshold/FailureDecay counters.

# Configuration

TreeConfig mirrors suture's own tunables. Defaults match suture's
recommended production defaults (5 failures / 30s decay / 15s backoff /
10s shutdown timeout).
*/
package supervisor
