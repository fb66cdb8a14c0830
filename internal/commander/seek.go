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

// Target describes the player a command is addressed to.
type Target struct {
	MachineIdentifier string
	Product           string
	BaseURL           string
	ProxyThroughServer bool
	PlayerAddress     string
}

func (c *Commander) playerClient(t Target) *mediaserver.PlayerClient {
	return mediaserver.NewPlayerClient(c.server, t.MachineIdentifier, t.BaseURL, t.ProxyThroughServer)
}

// SeekTo issues a seek, or — when the session's skipNext flag is set and
// the target lands at or past the item's end — redirects to AdvanceNext.
// It records the seek as begun on the session before issuing the RPC, per
// the seek-interlock design in §4.C.
func (c *Commander) SeekTo(ctx context.Context, s *mediasession.Session, t Target, targetOffset int64) error {
	fudge := creditSkipFix(t.Product)

	if s.SkipNext && targetOffset >= s.Item.Duration {
		return c.AdvanceNext(ctx, s, t)
	}

	if s.Item.Duration > 0 && targetOffset >= s.Item.Duration-fudge {
		targetOffset = s.Item.Duration - fudge
	}
	if targetOffset <= s.StoredViewOffset() {
		return nil
	}

	origin := s.StoredViewOffset()
	s.BeginSeek(origin, targetOffset)

	start := time.Now()
	err := c.breakerCall(t.MachineIdentifier, func() error {
		return c.playerClient(t).SeekTo(ctx, targetOffset)
	})
	category := ""
	if err != nil {
		category = string(Classify(err))
		switch category {
		case string(CategoryParseError):
			err = nil
		case string(CategoryBadRequest):
			if t.ProxyThroughServer {
				if recovered, rerr := RecoverPlayer(t, t.PlayerAddress); rerr == nil {
					logging.Warn().Str("player", t.MachineIdentifier).Msg("seek got bad_request via proxy, retrying with direct connection")
					if retryErr := c.breakerCall(t.MachineIdentifier, func() error {
						return c.playerClient(recovered).SeekTo(ctx, targetOffset)
					}); retryErr == nil {
						err = nil
					}
				}
			}
		}
	}
	metrics.RecordCommanderRPC("seek", time.Since(start), category)
	if err != nil {
		if hint := Hint(err); hint != "" {
			logging.Warn().Str("player", t.MachineIdentifier).Str("hint", hint).Msg("seek failed with known error pattern")
		}
		return fmt.Errorf("commander: seek %s: %w", t.MachineIdentifier, err)
	}
	metrics.RecordSkip("marker")
	logging.Info().Str("player", t.MachineIdentifier).Int64("origin", origin).Int64("target", targetOffset).Msg("skip issued")
	return nil
}

func (c *Commander) breakerCall(machineIdentifier string, fn func() error) error {
	_, err := c.breakerFor(machineIdentifier).Execute(func() (any, error) {
		return nil, fn()
	})
	return err
}
