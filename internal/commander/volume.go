// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package commander

import (
	"context"
	"fmt"
	"time"

	"github.com/mdhiggins-go/plexautoskip-go/internal/mediasession"
	"github.com/mdhiggins-go/plexautoskip-go/internal/metrics"
)

// SetVolume issues a volume change. lower caches the session's current
// volume so a later restore call can put it back; restore clears the
// cached value and requires one to have been recorded.
func (c *Commander) SetVolume(ctx context.Context, s *mediasession.Session, t Target, level int, lower bool) error {
	if lower {
		if !s.LoweringVolume {
			s.CachedVolume = level
		}
	}

	start := time.Now()
	err := c.breakerCall(t.MachineIdentifier, func() error {
		return c.playerClient(t).SetVolume(ctx, level)
	})
	metrics.RecordCommanderRPC("volume", time.Since(start), categoryOrEmpty(err))
	if err != nil {
		return fmt.Errorf("commander: set volume %s: %w", t.MachineIdentifier, err)
	}

	if lower {
		s.LoweringVolume = true
		metrics.RecordVolumeChange("lower")
	} else {
		s.LoweringVolume = false
		metrics.RecordVolumeChange("restore")
	}
	return nil
}

// RestoreVolume restores the player's volume to the session's cached
// pre-lowering level.
func (c *Commander) RestoreVolume(ctx context.Context, s *mediasession.Session, t Target) error {
	if !s.LoweringVolume {
		return nil
	}
	return c.SetVolume(ctx, s, t, s.CachedVolume, false)
}
