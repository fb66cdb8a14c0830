// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package binge implements the binge inhibitor: skip suppression for the
// first N episodes watched back-to-back on a client, so a viewer who just
// started a show still sees its intro and credits.
package binge

import (
	"errors"
	"time"

	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaitem"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediasession"
)

// Timeout is how long a binge session may go without an update before Clean
// removes it.
const Timeout = 30 * time.Second

// ErrNotEpisode is returned by NewSession when the session's item is not an
// episode; only episodes participate in binge tracking.
var ErrNotEpisode = errors.New("binge: session is not an episode")

// Session tracks one client's binge-watch progress: how many episodes have
// played since the client started this session, and whether skipping is
// still suppressed.
type Session struct {
	Current      *mediasession.Session
	Count        int
	BlockCount   int
	SafeTags     []string
	SameShowOnly bool
	LastUpdate   time.Time
}

// NewSession starts binge tracking for a client's first episode.
func NewSession(current *mediasession.Session, blockCount int, safeTags []string, sameShowOnly bool) (*Session, error) {
	if current.Item.Kind != mediaitem.KindEpisode {
		return nil, ErrNotEpisode
	}
	s := &Session{
		Current:      current,
		Count:        1,
		BlockCount:   blockCount,
		SafeTags:     safeTags,
		SameShowOnly: sameShowOnly,
		LastUpdate:   time.Now(),
	}
	s.applyBlock()
	return s, nil
}

// Block reports whether skipping is currently suppressed for this client.
func (s *Session) Block() bool {
	return s.Count <= s.BlockCount
}

// Remaining reports how many more episodes remain blocked.
func (s *Session) Remaining() int {
	r := s.BlockCount - s.Count
	if r < 0 {
		return 0
	}
	return r
}

// SinceLastUpdate reports how long it has been since the session last saw
// an update.
func (s *Session) SinceLastUpdate() time.Duration {
	return time.Since(s.LastUpdate)
}

// Update advances the binge session when the client starts a new item,
// incrementing Count and re-applying the tag filter. A new item on the same
// client but a different user does not advance an existing tracker; the
// caller is expected to key trackers by clientIdentifier only, matching the
// source, so this guards against a stale cross-user collision.
func (s *Session) Update(next *mediasession.Session, userID string) {
	if s.Current.ID.ClientIdentifier != next.ID.ClientIdentifier {
		return
	}
	if s.Current.UserID != userID {
		return
	}
	if s.SameShowOnly && next.Item.GrandparentKey() != s.Current.Item.GrandparentKey() {
		return
	}
	if next.Item.RatingKey != s.Current.Item.RatingKey {
		s.Current = next
		s.Count++
		s.applyBlock()
	}
	s.LastUpdate = time.Now()
}

// applyBlock filters the current session's tags and custom markers down to
// the safe-tag set while the client is still within the block window.
func (s *Session) applyBlock() {
	if !s.Block() {
		return
	}
	s.Current.Tags = filterToSafeTags(s.Current.Tags, s.SafeTags)
	s.Current.CustomMarkers = filterMarkersToSafeTags(s.Current.CustomMarkers, s.SafeTags)
}

func filterToSafeTags(tags, safe []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if contains(safe, t) {
			out = append(out, t)
		}
	}
	return out
}

func filterMarkersToSafeTags(markers []mediasession.CustomMarker, safe []string) []mediasession.CustomMarker {
	out := make([]mediasession.CustomMarker, 0, len(markers))
	for _, m := range markers {
		if contains(safe, m.Type) {
			out = append(out, m)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
