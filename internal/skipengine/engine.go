// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package skipengine

import (
	"context"
	"sync"

	"github.com/mdhiggins-go/plexautoskip-go/internal/binge"
	"github.com/mdhiggins-go/plexautoskip-go/internal/commander"
	"github.com/mdhiggins-go/plexautoskip-go/internal/customentries"
	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaserver"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediasession"
	"github.com/mdhiggins-go/plexautoskip-go/internal/metrics"
)

// Engine tracks every in-flight playback session admitted by shouldAdd and
// evaluates its markers, chapters, and volume rules on every tick. One
// Engine serves the entire media server; there is no per-user sharding.
type Engine struct {
	server     *mediaserver.Client
	commander  *commander.Commander
	doc        *customentries.Document
	bingeTable *binge.Table
	settings   Settings
	decisions  *logging.DecisionLogger

	mu       sync.Mutex
	sessions map[mediasession.ID]*mediasession.Session
	ignored  []mediasession.ID
}

// New builds an Engine. doc and bingeTable may be nil to disable custom
// entries and binge inhibition respectively.
func New(server *mediaserver.Client, cmd *commander.Commander, doc *customentries.Document, bingeTable *binge.Table, settings Settings) *Engine {
	if doc == nil {
		doc = &customentries.Document{}
	}
	return &Engine{
		server:     server,
		commander:  cmd,
		doc:        doc,
		bingeTable: bingeTable,
		settings:   settings,
		decisions:  logging.NewDecisionLogger(),
		sessions:   make(map[mediasession.ID]*mediasession.Session),
	}
}

func (e *Engine) isIgnored(id mediasession.ID) bool {
	for _, i := range e.ignored {
		if i == id {
			return true
		}
	}
	return false
}

func (e *Engine) ignoreSession(id mediasession.ID) {
	e.purgeOldSessions(id)
	e.ignored = append(e.ignored, id)
	if len(e.ignored) > IgnoredCap {
		e.ignored = e.ignored[len(e.ignored)-IgnoredCap:]
	}
	metrics.IgnoredSessions.Set(float64(len(e.ignored)))
}

// purgeOldSessions drops any tracked session sharing the same player, per
// the source's one-session-per-player invariant: a new alert on a player
// already tracked under a different sessionKey replaces the old one.
func (e *Engine) purgeOldSessions(id mediasession.ID) {
	for existingID := range e.sessions {
		if existingID.ClientIdentifier == id.ClientIdentifier && existingID != id {
			delete(e.sessions, existingID)
			metrics.ActiveSessions.Set(float64(len(e.sessions)))
			return
		}
	}
}

func (e *Engine) removeSession(id mediasession.ID) {
	if _, ok := e.sessions[id]; ok {
		delete(e.sessions, id)
		metrics.ActiveSessions.Set(float64(len(e.sessions)))
	}
}

// addSession validates the player, evicts any existing session on the same
// player, feeds the binge inhibitor, installs the session, and runs one
// immediate checkMedia pass so a session doesn't wait a full tick before its
// rules are first evaluated. It reports whether the session was installed;
// a known-broken client version or an unreachable direct-connection base
// URL rejects the session instead.
func (e *Engine) addSession(ctx context.Context, s *mediasession.Session) bool {
	if !commander.ValidPlayer(s.Product, s.Version) {
		logging.Warn().Str("sessionKey", s.ID.SessionKey).Str("product", s.Product).Str("version", s.Version).
			Msg("rejecting session, client version is known incompatible")
		return false
	}
	if !s.ProxyThroughServer && s.BaseURL == "" {
		logging.Warn().Str("sessionKey", s.ID.SessionKey).Str("product", s.Product).
			Msg("rejecting session, no reachable base URL for a non-proxied client")
		return false
	}

	e.purgeOldSessions(s.ID)
	if e.bingeTable != nil {
		e.bingeTable.Update(s, s.UserID)
	}
	e.sessions[s.ID] = s
	metrics.ActiveSessions.Set(float64(len(e.sessions)))
	e.checkMedia(ctx, s)
	return true
}

// Sessions returns a snapshot of the currently tracked sessions, for
// diagnostics and tests.
func (e *Engine) Sessions() []*mediasession.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*mediasession.Session, 0, len(e.sessions))
	for _, s := range e.sessions {
		out = append(out, s)
	}
	return out
}
