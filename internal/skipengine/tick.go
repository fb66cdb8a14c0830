// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package skipengine

import (
	"context"
	"time"

	"github.com/mdhiggins-go/plexautoskip-go/internal/mediasession"
)

// tickInterval matches the source's one-second polling cadence between
// alert-driven offset updates.
const tickInterval = time.Second

// Run drives the tick loop until ctx is canceled, re-evaluating every
// tracked session once per tickInterval. It is meant to run as a
// suture.Service alongside the alert listener.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.tick(ctx)
		}
	}
}

func (e *Engine) tick(ctx context.Context) {
	e.mu.Lock()
	snapshot := make([]*mediasession.Session, 0, len(e.sessions))
	for _, s := range e.sessions {
		snapshot = append(snapshot, s)
	}
	e.mu.Unlock()

	for _, s := range snapshot {
		e.mu.Lock()
		e.checkMedia(ctx, s)
		e.mu.Unlock()
	}

	if e.bingeTable != nil {
		e.bingeTable.Clean()
	}
}
