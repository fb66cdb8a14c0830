// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


/*
Package main is the entry point for the skipper daemon: a long-running
controller that watches playback sessions on a media server and
automatically seeks players past intros, credits, and commercials, or
lowers volume during them.

# Application Architecture

The daemon runs three supervised layers under a suture.v4 tree:

	skipper ("skipper")
	├── alert-layer   — the persistent WebSocket alert listener
	├── tick-layer    — the 1 Hz session-evaluation loop
	└── command-layer — the Prometheus /metrics HTTP server

Component initialization order:

 1. Configuration: the INI file at PAS_CONFIG (or config.ini), missing
    options materialized with defaults and the file rewritten.
 2. Logging: zerolog with JSON output at info level; PAS_VERBOSE=true
    raises the whole process to trace level.
 3. Media server client: REST/WebSocket client built from [Server] and
    [Plex.tv] config.
 4. Custom entries: the JSON document of per-item overrides is decoded,
    and any GUID-keyed identifiers are resolved to rating keys by
    walking the server's libraries.
 5. Binge inhibitor table, built from [Skip] binge settings.
 6. Commander and skip engine, wired to the media server client.
 7. Metrics: a Prometheus /metrics endpoint.
 8. Supervisor tree: the alert listener and tick loop are placed under
    supervision and the tree is started.

# Configuration

	PAS_CONFIG     overrides the config file path (default config.ini)
	PAS_VERBOSE    "true" enables trace-level logging

See internal/config for the full INI schema.

# Signal Handling

SIGINT and SIGTERM trigger graceful shutdown: the supervisor tree's root
context is canceled, the alert listener closes its socket, the tick loop
exits after its current pass, and the process reports any service that
failed to stop within the configured shutdown timeout.

# See Also

  - internal/config: INI configuration loading
  - internal/skipengine: the session table and tick-driven rule engine
  - internal/alertlistener: the WebSocket alert subscription
  - internal/supervisor: process supervision
  - cmd/auditor: the custom-entries audit CLI
*/
package main
