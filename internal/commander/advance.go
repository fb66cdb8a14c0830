// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package commander

import (
	"context"
	"fmt"
	"time"

	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaserver"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediasession"
	"github.com/mdhiggins-go/plexautoskip-go/internal/metrics"
)

// AdvanceNext stops the player, waits the session's configured command
// delay (clients need a beat to tear down the current stream before
// accepting the next one), then builds a fresh play queue starting at the
// item following the current one and starts it. This is the skip-next
// path: a marker tagged to skip straight to the next episode rather than
// seeking within the current item.
func (c *Commander) AdvanceNext(ctx context.Context, s *mediasession.Session, t Target) error {
	start := time.Now()
	player := c.playerClient(t)

	err := c.breakerCall(t.MachineIdentifier, func() error {
		return player.Stop(ctx)
	})
	if err != nil {
		metrics.RecordCommanderRPC("advance", time.Since(start), string(Classify(err)))
		return fmt.Errorf("commander: advance stop %s: %w", t.MachineIdentifier, err)
	}

	if s.CommandDelay > 0 {
		select {
		case <-time.After(s.CommandDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	queue, err := c.server.GetPlayQueue(ctx, s.PlayQueueID)
	if err != nil {
		metrics.RecordCommanderRPC("advance", time.Since(start), string(Classify(err)))
		return fmt.Errorf("commander: advance fetch queue %s: %w", t.MachineIdentifier, err)
	}

	next, ok := nextQueueItem(queue.Items, s.Item.RatingKey)
	if !ok {
		metrics.RecordCommanderRPC("advance", time.Since(start), string(CategoryBadRequest))
		return fmt.Errorf("commander: advance %s: no item follows ratingKey %s in play queue", t.MachineIdentifier, s.Item.RatingKey)
	}

	newQueue, err := c.server.CreatePlayQueue(ctx, s.Item.Library, next.Key)
	if err != nil {
		metrics.RecordCommanderRPC("advance", time.Since(start), string(Classify(err)))
		return fmt.Errorf("commander: advance create queue %s: %w", t.MachineIdentifier, err)
	}

	err = c.breakerCall(t.MachineIdentifier, func() error {
		return player.PlayMedia(ctx, newQueue.ID, t.MachineIdentifier, next.Key)
	})
	metrics.RecordCommanderRPC("advance", time.Since(start), categoryOrEmpty(err))
	if err != nil {
		return fmt.Errorf("commander: advance playMedia %s: %w", t.MachineIdentifier, err)
	}

	metrics.RecordSkip("skip_next")
	logging.Info().Str("player", t.MachineIdentifier).Str("nextRatingKey", next.RatingKey).Msg("advanced to next item")
	return nil
}

func categoryOrEmpty(err error) string {
	if err == nil {
		return ""
	}
	return string(Classify(err))
}

// nextQueueItem returns the item immediately following currentRatingKey in
// a play queue's item list.
func nextQueueItem(items []mediaserver.PlayQueueItem, currentRatingKey string) (mediaserver.PlayQueueItem, bool) {
	for i, item := range items {
		if item.RatingKey == currentRatingKey && i+1 < len(items) {
			return items[i+1], true
		}
	}
	return mediaserver.PlayQueueItem{}, false
}
