// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package mediasession models a single in-flight playback session: its
// resolved effective rule set, its seek-in-progress interlock, and the
// projected view position used to evaluate skip/volume rules.
package mediasession

import (
	"time"

	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaitem"
)

// State is the playback state reported by the server.
type State int

const (
	StatePlaying State = iota
	StatePaused
	StateStopped
	StateBuffering
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateBuffering:
		return "buffering"
	default:
		return "unknown"
	}
}

// ParseState maps the server's state string to a State, defaulting to
// StateBuffering for anything unrecognized so an unknown state never gets
// mistaken for "playing".
func ParseState(s string) State {
	switch s {
	case "playing":
		return StatePlaying
	case "paused":
		return StatePaused
	case "stopped":
		return StateStopped
	default:
		return StateBuffering
	}
}

// ID uniquely identifies a session in the engine's table. sessionKey alone
// is not unique across reconnects, so both fields are required.
type ID struct {
	SessionKey       string
	ClientIdentifier string
}

// Session models a single in-flight playback. Each Session owns its own
// CustomMarkers and Tags slices — the source's mutable-class-level-default
// aliasing bug (a module-level list captured per instance) has no
// equivalent here because every field is initialized per call to New.
type Session struct {
	ID ID

	Item               mediaitem.Item
	PlayerIdentifier   string // machineIdentifier; the commander builds a player client from it per command
	Product            string
	Version            string
	PlayerAddress      string
	UserID             string
	PlayQueueID        int64

	State State
	Ended bool

	// viewOffsetStored and lastUpdate implement the projected view offset:
	// while State == StatePlaying, the effective offset extrapolates forward
	// by wall-clock time elapsed since lastUpdate, capped at Item.Duration.
	viewOffsetStored int64
	lastUpdate       time.Time

	SeekOrigin int64
	SeekTarget int64

	LeftOffset   int64
	RightOffset  int64
	OffsetTags   []string
	Tags         []string
	Mode         string
	SkipNext     bool
	CommandDelay time.Duration
	CustomMarkers []CustomMarker

	CachedVolume   int
	LoweringVolume bool

	LastAlert time.Time
	LastSeek  time.Time

	ProxyThroughServer bool
	BaseURL            string

	CustomOnly bool

	// LastChapter is the item's final chapter, recorded at construction for
	// last-chapter-percentage comparisons; HasLastChapter is false if the
	// item has none.
	LastChapter   mediaitem.Chapter
	HasLastChapter bool
}

// New creates a Session with its own independently-owned slices.
func New(id ID, item mediaitem.Item) *Session {
	return &Session{
		ID:            id,
		Item:          item,
		Tags:          make([]string, 0),
		OffsetTags:    make([]string, 0),
		CustomMarkers: make([]CustomMarker, 0),
		lastUpdate:    time.Now(),
	}
}

// Seeking reports whether a seek RPC is in flight.
func (s *Session) Seeking() bool {
	return s.SeekTarget > 0
}

// ViewOffset returns the projected view position in milliseconds: while
// State == StatePlaying the stored offset is extrapolated forward by the
// wall-clock time elapsed since the last update, capped at the item's
// duration.
func (s *Session) ViewOffset() int64 {
	if s.State != StatePlaying {
		return s.viewOffsetStored
	}
	elapsed := time.Since(s.lastUpdate).Milliseconds()
	projected := s.viewOffsetStored + elapsed
	if s.Item.Duration > 0 && projected > s.Item.Duration {
		return s.Item.Duration
	}
	return projected
}

// StoredViewOffset returns the authoritative (non-extrapolated) offset.
func (s *Session) StoredViewOffset() int64 { return s.viewOffsetStored }

// DurationReached reports whether offset meets the configured tolerance
// fraction of the item's duration.
func (s *Session) DurationReached(offset int64, tolerance float64) bool {
	if s.Item.Duration <= 0 {
		return false
	}
	return float64(offset) >= float64(s.Item.Duration)*tolerance
}
