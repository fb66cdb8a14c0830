// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package binge

import (
	"sync"
	"time"

	"github.com/mdhiggins-go/plexautoskip-go/internal/mediasession"
)

// Table tracks one binge Session per clientIdentifier, guarded by a single
// lock per the engine's single-lock-per-table concurrency model.
type Table struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	blockCount   int
	safeTags     []string
	sameShowOnly bool
}

// NewTable builds an empty binge table using the given config-derived
// block window.
func NewTable(blockCount int, safeTags []string, sameShowOnly bool) *Table {
	return &Table{
		sessions:     make(map[string]*Session),
		blockCount:   blockCount,
		safeTags:     safeTags,
		sameShowOnly: sameShowOnly,
	}
}

// Update advances or creates the binge session for a session's client,
// mirroring resources/binge.py's BingeSessions.update. Stopped/paused
// states never advance tracking. binge=0 disables tracking entirely.
func (t *Table) Update(s *mediasession.Session, userID string) {
	if t.blockCount <= 0 {
		return
	}
	if s.State == mediasession.StateStopped || s.State == mediasession.StatePaused {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.sessions[s.ID.ClientIdentifier]; ok {
		existing.Update(s, userID)
		return
	}
	bs, err := NewSession(s, t.blockCount, t.safeTags, t.sameShowOnly)
	if err != nil {
		return
	}
	t.sessions[s.ID.ClientIdentifier] = bs
}

// Ping refreshes LastUpdate for an active play-queue without advancing the
// episode count, matching resources/binge.py's BingeSessions.ping.
func (t *Table) Ping(clientIdentifier string, playQueueID int64, state mediasession.State) {
	if t.blockCount <= 0 {
		return
	}
	if state == mediasession.StateStopped || state == mediasession.StatePaused {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	bs, ok := t.sessions[clientIdentifier]
	if !ok || bs.Current.PlayQueueID != playQueueID {
		return
	}
	bs.LastUpdate = time.Now()
}

// ShouldBlockSkipping reports whether the given client is still within its
// binge block window.
func (t *Table) ShouldBlockSkipping(clientIdentifier string) bool {
	if t.blockCount <= 0 {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	bs, ok := t.sessions[clientIdentifier]
	if !ok {
		return false
	}
	return bs.Block()
}

// Count reports the episode count tracked for a client, for decision
// logging around a binge block. Returns 0 if the client has no tracked
// binge session.
func (t *Table) Count(clientIdentifier string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	bs, ok := t.sessions[clientIdentifier]
	if !ok {
		return 0
	}
	return bs.Count
}

// Clean evicts any tracked session that has not been updated within
// Timeout.
func (t *Table) Clean() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var evicted []string
	for id, bs := range t.sessions {
		if bs.SinceLastUpdate() > Timeout {
			delete(t.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// Len reports the number of tracked binge sessions.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}
