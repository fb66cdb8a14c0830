// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package skipengine is the tick-driven decision loop: it turns media
// server alerts into tracked sessions, evaluates each tracked session's
// markers/chapters/custom-entries against its current view offset every
// tick, and dispatches skip and volume commands through the commander.
package skipengine

import "time"

// SkipMode is the first-episode skip policy (first-episode-series /
// first-episode-season config keys).
type SkipMode string

const (
	SkipModeNever   SkipMode = "never"
	SkipModeWatched SkipMode = "watched"
	SkipModeAlways  SkipMode = "always"
)

// ParseSkipMode maps a config string to a SkipMode, defaulting to "always"
// for anything unrecognized so a typo never silently blocks skipping.
func ParseSkipMode(s string) SkipMode {
	switch SkipMode(s) {
	case SkipModeNever, SkipModeWatched:
		return SkipMode(s)
	default:
		return SkipModeAlways
	}
}

// Timeout is how long a session may go without an alert before the tick
// loop considers it stale and removes it.
const Timeout = 30 * time.Second

// IgnoredCap bounds the size of the short-lived ignore list so a server
// that never stops generating ignorable sessions can't leak memory.
const IgnoredCap = 200

// Settings carries the config-derived rule defaults and gating policy the
// engine applies to every session it considers tracking.
type Settings struct {
	LeftOffset  int64
	RightOffset int64
	Tags        []string
	Mode        string
	CommandDelay int64 // ms

	VolumeLow  int
	VolumeHigh int

	SkipLastChapterThreshold float64 // fraction of duration; 0 disables
	SkipUnwatched            bool
	FirstEpisodeSeries       SkipMode
	FirstEpisodeSeason       SkipMode

	Types             []string
	IgnoredLibraries  []string
	DurationTolerance float64

	Next        bool
	SkipNextMax int
}
