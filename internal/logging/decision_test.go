// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestDecisionLogger(buf *bytes.Buffer) *DecisionLogger {
	return NewDecisionLoggerWithLogger(zerolog.New(buf))
}

func TestDecisionLoggerLogSkip(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDecisionLogger(&buf)

	d.LogSkip(context.Background(), "sess-1", "chapter", 1000, 5000)

	out := buf.String()
	if !strings.Contains(out, "skip issued") {
		t.Errorf("expected skip message, got %s", out)
	}
	if !strings.Contains(out, "\"source\":\"chapter\"") {
		t.Errorf("expected source field, got %s", out)
	}
}

func TestDecisionLoggerCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDecisionLogger(&buf)

	ctx := ContextWithCorrelationID(context.Background(), "abc12345")
	d.LogVolumeChange(ctx, "sess-1", "lower", 30)

	out := buf.String()
	if !strings.Contains(out, "\"correlation_id\":\"abc12345\"") {
		t.Errorf("expected correlation_id field, got %s", out)
	}
}

func TestDecisionLoggerLogBingeBlock(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDecisionLogger(&buf)

	d.LogBingeBlock(context.Background(), "sess-1", 2)

	out := buf.String()
	if !strings.Contains(out, "binge block suppressed skip") {
		t.Errorf("expected binge block message, got %s", out)
	}
}

func TestDecisionLoggerLogCommanderFailed(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDecisionLogger(&buf)

	d.LogCommanderFailed(context.Background(), "sess-1", "seek", "transient", errors.New("timeout"))

	out := buf.String()
	if !strings.Contains(out, "commander rpc failed") {
		t.Errorf("expected commander rpc failed message, got %s", out)
	}
	if !strings.Contains(out, "\"category\":\"transient\"") {
		t.Errorf("expected category field, got %s", out)
	}
}

func TestDecisionLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDecisionLogger(&buf).WithFields(map[string]interface{}{"player": "abc123"})

	d.LogCircuitOpen(context.Background(), "abc123")

	out := buf.String()
	if !strings.Contains(out, "\"player\":\"abc123\"") {
		t.Errorf("expected player field, got %s", out)
	}
}
