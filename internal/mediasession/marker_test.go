// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package mediasession

import (
	"errors"
	"testing"
)

func TestParseCustomMarkerAbsolute(t *testing.T) {
	m, err := ParseCustomMarker(30000, 60000, "intro", "skip", false, "123", 1800000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Start != 30000 || m.End != 60000 {
		t.Errorf("got (%d, %d), want (30000, 60000)", m.Start, m.End)
	}
}

func TestParseCustomMarkerNegativeEnd(t *testing.T) {
	m, err := ParseCustomMarker(-120000, -1, "credits", "skip", false, "123", 1800000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Start != 1680000 {
		t.Errorf("start = %d, want 1680000", m.Start)
	}
	if m.End != 1799999 {
		t.Errorf("end = %d, want 1799999", m.End)
	}
}

func TestParseCustomMarkerNegativeUnknownDuration(t *testing.T) {
	_, err := ParseCustomMarker(-1000, 500, "intro", "skip", false, "123", 0)
	if !errors.Is(err, ErrNegativeValueUnknownDuration) {
		t.Fatalf("got %v, want ErrNegativeValueUnknownDuration", err)
	}
}

func TestParseCustomMarkerClampsToDuration(t *testing.T) {
	m, err := ParseCustomMarker(0, 5000000, "intro", "skip", false, "123", 1800000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.End != 1800000 {
		t.Errorf("end = %d, want clamped to 1800000", m.End)
	}
}

func TestCustomMarkerContains(t *testing.T) {
	m := CustomMarker{Start: 30000, End: 60000}
	if !m.Contains(32000, 2000) {
		t.Error("expected 32000 with leftOffset 2000 to be contained")
	}
	if m.Contains(60000, 0) {
		t.Error("end is exclusive, 60000 should not be contained")
	}
	if m.Contains(31000, 2000) {
		t.Error("31000 is before start+leftOffset=32000, should not be contained")
	}
}
