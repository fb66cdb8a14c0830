// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package mediasession

import "time"

// UpdateOffset reconciles an incoming alert's viewOffset and state against
// any in-flight seek. It returns false when the alert is rejected as stale
// and the session's state is left untouched.
//
// Acceptance rules, checked in order:
//   - seeking and seekOrigin < offset < seekTarget: the alert reports a
//     transient mid-seek position; reject it regardless of state.
//   - seeking and offset < seekOrigin: a manual user seek landed before the
//     engine's own seek target; accept it and clear seek state.
//   - seeking and offset >= seekTarget: the engine's seek is confirmed;
//     accept it and clear seek state.
//   - not seeking: always accept.
func (s *Session) UpdateOffset(offset int64, state State, durationTolerance float64) bool {
	if s.Seeking() {
		if offset > s.SeekOrigin && offset < s.SeekTarget {
			return false
		}
		if offset < s.SeekOrigin {
			s.clearSeek()
		} else if offset >= s.SeekTarget {
			s.clearSeek()
		}
	}

	s.viewOffsetStored = offset
	s.State = state
	now := time.Now()
	s.lastUpdate = now
	s.LastAlert = now

	if !s.Ended && (state == StatePaused || state == StateStopped) && s.DurationReached(offset, durationTolerance) {
		s.Ended = true
	}

	return true
}

func (s *Session) clearSeek() {
	s.SeekOrigin = 0
	s.SeekTarget = 0
}

// BeginSeek records an in-flight seek issued by the engine.
func (s *Session) BeginSeek(origin, target int64) {
	s.SeekOrigin = origin
	s.SeekTarget = target
	s.LastSeek = time.Now()
}
