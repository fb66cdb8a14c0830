// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"
	"testing"
	"time"
)

type fakeManager struct {
	started, stopped bool
}

func (f *fakeManager) Start(ctx context.Context) error {
	f.started = true
	return nil
}

func (f *fakeManager) Stop(ctx context.Context) error {
	f.stopped = true
	return nil
}

func TestStartStopService(t *testing.T) {
	m := &fakeManager{}
	svc := NewStartStopService("test-service", m)

	if svc.String() != "test-service" {
		t.Errorf("expected name test-service, got %s", svc.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); err != nil {
		t.Fatalf("Serve returned error: %v", err)
	}
	if !m.started {
		t.Error("expected manager to be started")
	}
	if !m.stopped {
		t.Error("expected manager to be stopped")
	}
}
