// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package skipengine

import (
	"context"
	"strings"
	"time"

	"github.com/mdhiggins-go/plexautoskip-go/internal/commander"
	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediasession"
)

const (
	modeSkip   = "skip"
	modeVolume = "volume"
)

// checkMedia evaluates one session against the current tick: stale-session
// eviction, skip rules, volume rules, and end-of-media handling.
func (e *Engine) checkMedia(ctx context.Context, s *mediasession.Session) {
	if time.Since(s.LastAlert) > Timeout {
		logging.Debug().Str("sessionKey", s.ID.SessionKey).Msg("session stale, removing")
		e.removeSession(s.ID)
		return
	}
	if s.State == mediasession.StateBuffering {
		return
	}

	leftOffset, rightOffset := s.LeftOffset, s.RightOffset
	if leftOffset == 0 {
		leftOffset = e.settings.LeftOffset
	}
	if rightOffset == 0 {
		rightOffset = e.settings.RightOffset
	}

	e.checkMediaSkip(ctx, s, leftOffset, rightOffset)
	e.checkMediaVolume(ctx, s, leftOffset, rightOffset)

	switch {
	case s.SkipNext && s.Ended && s.DurationReached(s.ViewOffset(), e.settings.DurationTolerance):
		e.target(ctx, s, s.Item.Duration)
	case s.Ended:
		logging.Debug().Str("sessionKey", s.ID.SessionKey).Msg("session ended, removing")
		e.decisions.LogSessionRemoved(ctx, s.ID.SessionKey, "ended")
		e.removeSession(s.ID)
	}
}

func (e *Engine) target(ctx context.Context, s *mediasession.Session, offset int64) {
	t := e.targetFor(s)
	if err := e.commander.SeekTo(ctx, s, t, offset); err != nil {
		category := commander.Classify(err)
		logging.Error().Err(err).Str("sessionKey", s.ID.SessionKey).Str("category", string(category)).Msg("seek failed")
		e.decisions.LogCommanderFailed(ctx, s.ID.SessionKey, "seek", string(category), err)
		e.applyCommandOutcome(ctx, s, category)
		return
	}
	e.decisions.LogSkip(ctx, s.ID.SessionKey, "target", s.ViewOffset(), offset)
}

func (e *Engine) targetFor(s *mediasession.Session) commander.Target {
	return commander.Target{
		MachineIdentifier:  s.PlayerIdentifier,
		Product:            s.Product,
		BaseURL:            s.BaseURL,
		ProxyThroughServer: s.ProxyThroughServer,
		PlayerAddress:      s.PlayerAddress,
	}
}

// applyCommandOutcome applies the required state change for a classified
// RPC failure: a transient/timeout failure means the player has likely gone
// away, so the session is dropped; a bad_request/not_found failure means the
// player is present but not ready, so the session is marked buffering until
// the next alert clears it.
func (e *Engine) applyCommandOutcome(ctx context.Context, s *mediasession.Session, category commander.Category) {
	switch category {
	case commander.CategoryTransient:
		e.decisions.LogSessionRemoved(ctx, s.ID.SessionKey, "commander_transient_failure")
		e.removeSession(s.ID)
	case commander.CategoryBadRequest:
		s.State = mediasession.StateBuffering
	}
}

func (e *Engine) checkMediaSkip(ctx context.Context, s *mediasession.Session, leftOffset, rightOffset int64) {
	if s.State != mediasession.StatePlaying {
		return
	}
	offset := s.ViewOffset()

	for _, m := range s.CustomMarkers {
		if m.Mode != modeSkip {
			continue
		}
		if m.Contains(offset, 0) {
			e.target(ctx, s, m.End)
			return
		}
	}

	if s.Mode != modeSkip {
		return
	}

	if e.settings.SkipLastChapterThreshold > 0 && s.HasLastChapter && s.Item.Duration > 0 {
		frac := float64(s.LastChapter.Start) / float64(s.Item.Duration)
		if frac > e.settings.SkipLastChapterThreshold && s.LastChapter.Start <= offset && offset < s.LastChapter.End {
			e.target(ctx, s, s.Item.Duration)
			return
		}
	}

	for _, c := range s.Item.Chapters {
		if c.Start <= offset && offset < c.End {
			e.target(ctx, s, c.End)
			return
		}
	}

	for _, m := range s.Item.Markers {
		lo, ro := int64(0), int64(0)
		if contains(s.OffsetTags, strings.ToLower(m.Type)) {
			lo, ro = leftOffset, rightOffset
		}
		start := m.Start
		if start >= lo {
			start = m.Start + lo
		}
		if start <= offset && offset < m.End {
			e.target(ctx, s, m.End+ro)
			return
		}
	}
}

func (e *Engine) checkMediaVolume(ctx context.Context, s *mediasession.Session, leftOffset, rightOffset int64) {
	if s.State != mediasession.StatePlaying {
		return
	}
	shouldLower := e.shouldLowerVolume(s, leftOffset, rightOffset)
	t := e.targetFor(s)

	switch {
	case !s.LoweringVolume && shouldLower:
		if err := e.commander.SetVolume(ctx, s, t, e.settings.VolumeLow, true); err != nil {
			category := commander.Classify(err)
			logging.Error().Err(err).Str("sessionKey", s.ID.SessionKey).Str("category", string(category)).Msg("lower volume failed")
			e.decisions.LogCommanderFailed(ctx, s.ID.SessionKey, "lower_volume", string(category), err)
			e.applyCommandOutcome(ctx, s, category)
			return
		}
		e.decisions.LogVolumeChange(ctx, s.ID.SessionKey, "lower", e.settings.VolumeLow)
	case s.LoweringVolume && !shouldLower:
		if err := e.commander.RestoreVolume(ctx, s, t); err != nil {
			category := commander.Classify(err)
			logging.Error().Err(err).Str("sessionKey", s.ID.SessionKey).Str("category", string(category)).Msg("restore volume failed")
			e.decisions.LogCommanderFailed(ctx, s.ID.SessionKey, "restore_volume", string(category), err)
			e.applyCommandOutcome(ctx, s, category)
			return
		}
		e.decisions.LogVolumeChange(ctx, s.ID.SessionKey, "restore", e.settings.VolumeHigh)
	}
}

func (e *Engine) shouldLowerVolume(s *mediasession.Session, leftOffset, rightOffset int64) bool {
	offset := s.ViewOffset()

	for _, m := range s.CustomMarkers {
		if m.Mode == modeVolume && m.Start <= offset && offset < m.End {
			return true
		}
	}

	if s.Mode != modeVolume {
		return false
	}

	if e.settings.SkipLastChapterThreshold > 0 && s.HasLastChapter && s.Item.Duration > 0 {
		frac := float64(s.LastChapter.Start) / float64(s.Item.Duration)
		if frac > e.settings.SkipLastChapterThreshold && s.LastChapter.Start <= offset && offset <= s.LastChapter.End {
			return true
		}
	}

	for _, c := range s.Item.Chapters {
		if c.Start <= offset && offset < c.End {
			return true
		}
	}

	for _, m := range s.Item.Markers {
		lo, ro := int64(0), int64(0)
		if contains(s.OffsetTags, strings.ToLower(m.Type)) {
			lo, ro = leftOffset, rightOffset
		}
		if m.Start+lo <= offset && offset < m.End+ro {
			return true
		}
	}
	return false
}
