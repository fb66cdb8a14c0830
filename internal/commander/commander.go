// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package commander issues the playback-control RPCs decided by the skip
// engine — seek, volume, and play-queue advance — against the media
// server's player endpoints, with per-player circuit breaking and the
// error taxonomy's transient/permanent classification.
package commander

import (
	"context"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaserver"
	"github.com/mdhiggins-go/plexautoskip-go/internal/metrics"
)

// CreditSkipFix holds per-product millisecond fudge factors subtracted
// from a seek target at end-of-media, working around clients that choke on
// a seek landing exactly at duration.
var CreditSkipFix = map[string]int64{
	"Plex for Roku": 1500,
}

// BrokenClients maps a product name to the minimum version at or above
// which that client is known incompatible (Plex's removal of the
// "Advertise as Player" capability). Sessions on a broken client/version
// are ignored once, not retried.
var BrokenClients = map[string]string{
	"Plex Web":         "4.83.2",
	"Plex for Windows": "1.46.1",
	"Plex for Mac":     "1.46.1",
	"Plex for Linux":   "1.46.1",
}

// ProxyOnlyClients cannot fall back to a direct connection when proxying
// through the server fails; RecoverPlayer gives up immediately for these.
var ProxyOnlyClients = map[string]bool{
	"Plex Web":         true,
	"Plex for Windows": true,
	"Plex for Mac":     true,
	"Plex for Linux":   true,
}

// ClientPorts gives the direct-connection port per product. RecoverPlayer
// always uses this port (or DefaultClientPort for an unlisted product) and
// ignores any port in the player's reported address.
var ClientPorts = map[string]int{
	"Plex for Roku":              8324,
	"Plex for Android (TV)":      32500,
	"Plex for Android (Mobile)":  32500,
	"Plex for iOS":               32500,
	"Plex for Apple TV":          32500,
	"Plex for Windows":           32700,
	"Plex for Mac":                32700,
}

const DefaultClientPort = 32500

// Commander dispatches playback-control RPCs, maintaining one circuit
// breaker per player so a single misbehaving client cannot stall the
// engine's tick loop.
type Commander struct {
	server    *mediaserver.Client
	decisions *logging.DecisionLogger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

// New builds a Commander bound to a media server client.
func New(server *mediaserver.Client) *Commander {
	return &Commander{
		server:    server,
		decisions: logging.NewDecisionLogger(),
		breakers:  make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// breakerFor returns the circuit breaker for a player, creating one with
// the default settings on first use.
func (c *Commander) breakerFor(machineIdentifier string) *gobreaker.CircuitBreaker[any] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.breakers[machineIdentifier]; ok {
		return b
	}

	b := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        machineIdentifier,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			if to == gobreaker.StateOpen {
				logging.Warn().Str("player", name).Msg("commander circuit breaker open")
				c.decisions.LogCircuitOpen(context.Background(), name)
			}
		},
	})
	c.breakers[machineIdentifier] = b
	return b
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// creditSkipFix returns the millisecond fudge for a player product, or 0.
func creditSkipFix(product string) int64 {
	return CreditSkipFix[product]
}

// ValidPlayer reports whether a player's product/version is not in the
// known-broken-client table.
func ValidPlayer(product, version string) bool {
	bad, ok := BrokenClients[product]
	if !ok || version == "" {
		return true
	}
	return versionLess(safeVersion(version), bad)
}

// safeVersion strips any build-metadata suffix the way the source's
// safeVersion does ("1.46.1-abc123" -> "1.46.1").
func safeVersion(v string) string {
	for i := 0; i < len(v); i++ {
		if v[i] == '-' {
			return v[:i]
		}
	}
	return v
}
