// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package mediasession

import "errors"

// ErrNegativeValueUnknownDuration is returned by ParseCustomMarker when a
// marker uses a negative (from-end) value but the item's duration is not
// yet known, so the value cannot be resolved to an absolute offset.
var ErrNegativeValueUnknownDuration = errors.New("mediasession: negative marker value requires known duration")

// CustomMarker is a resolved, absolute-offset marker declared in the
// custom-entries document. Cascade controls whether it survives when a
// lower-priority (more specific) ancestor also declares markers.
type CustomMarker struct {
	Start      int64
	End        int64
	Type       string
	Mode       string
	Cascade    bool
	OwningKey  string
}

// ParseCustomMarker resolves a raw (start, end) pair from the custom-entries
// document into absolute millisecond offsets clamped to [0, duration].
//
// A non-negative value is already absolute. A negative value X resolves to
// duration+X, which requires duration > 0 — this is the explicit
// Result-style replacement for the source's exception-as-control-flow
// handling of unresolved durations.
func ParseCustomMarker(start, end int64, markerType, mode string, cascade bool, owningKey string, duration int64) (CustomMarker, error) {
	resolvedStart, err := resolveOffset(start, duration)
	if err != nil {
		return CustomMarker{}, err
	}
	resolvedEnd, err := resolveOffset(end, duration)
	if err != nil {
		return CustomMarker{}, err
	}
	return CustomMarker{
		Start:     resolvedStart,
		End:       resolvedEnd,
		Type:      markerType,
		Mode:      mode,
		Cascade:   cascade,
		OwningKey: owningKey,
	}, nil
}

func resolveOffset(value, duration int64) (int64, error) {
	if value >= 0 {
		return clamp(value, duration), nil
	}
	if duration <= 0 {
		return 0, ErrNegativeValueUnknownDuration
	}
	return clamp(duration+value, duration), nil
}

func clamp(value, duration int64) int64 {
	if value < 0 {
		return 0
	}
	if duration > 0 && value > duration {
		return duration
	}
	return value
}

// Contains reports whether the half-open range [Start+leftOffset, End)
// contains viewOffset, which is how the skip engine tests a marker for a
// hit during checkSkip/checkVolume.
func (m CustomMarker) Contains(viewOffset, leftOffset int64) bool {
	return viewOffset >= m.Start+leftOffset && viewOffset < m.End
}
