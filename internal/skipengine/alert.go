// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package skipengine

import (
	"context"

	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaserver"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediasession"
	"github.com/mdhiggins-go/plexautoskip-go/internal/metrics"
)

// HandleAlert adapts OnAlert to the alertlistener.OnAlert signature, which
// carries no per-message context.
func (e *Engine) HandleAlert(n mediaserver.PlaySessionStateNotification) {
	e.OnAlert(context.Background(), n)
}

// OnAlert processes one playback-state notification: admitting a new
// session, updating an existing one's offset, or detecting that a
// stopped/paused session has disappeared from the server's session list
// entirely (ended).
func (e *Engine) OnAlert(ctx context.Context, n mediaserver.PlaySessionStateNotification) {
	metrics.RecordAlert("playing")
	e.decisions.LogAlertReceived(ctx, n.SessionKey, n.State)
	id := mediasession.ID{SessionKey: n.SessionKey, ClientIdentifier: n.ClientIdentifier}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isIgnored(id) {
		return
	}

	s, tracked := e.sessions[id]
	if !tracked {
		e.admit(ctx, id, n)
		return
	}

	state := mediasession.ParseState(n.State)
	s.UpdateOffset(n.ViewOffset, state, e.settings.DurationTolerance)
	if e.bingeTable != nil {
		e.bingeTable.Update(s, s.UserID)
	}
	if !s.Ended && (state == mediasession.StateStopped || state == mediasession.StatePaused) {
		if still, err := e.findServerSession(ctx, n.SessionKey); err == nil && still == nil {
			s.Ended = true
		}
	}
}

// admit looks up the full session snapshot for a newly-seen sessionKey,
// applies the LAN-location gate, and runs it through shouldAdd/blockedClientUser
// to decide whether to track, custom-markers-only track, or ignore it.
func (e *Engine) admit(ctx context.Context, id mediasession.ID, n mediaserver.PlaySessionStateNotification) {
	full, err := e.findServerSession(ctx, n.SessionKey)
	if err != nil {
		logging.Error().Err(err).Str("sessionKey", n.SessionKey).Msg("failed to fetch session snapshot")
		return
	}
	if full == nil {
		return
	}
	if full.Session.Location != "" && full.Session.Location != "lan" {
		e.ignoreSession(id)
		return
	}

	item := itemFromSession(*full)

	if blockedClientUser(full.User.Title, full.Player.Title, id.ClientIdentifier, e.doc) {
		e.ignoreSession(id)
		return
	}

	defaults := mediasession.Defaults{
		LeftOffset:   e.settings.LeftOffset,
		RightOffset:  e.settings.RightOffset,
		Tags:         e.settings.Tags,
		Mode:         e.settings.Mode,
		CommandDelay: e.settings.CommandDelay,
	}
	session := mediasession.Construct(id, item, full.Player.Title, id.ClientIdentifier, e.doc, defaults)
	session.PlayerIdentifier = full.Player.MachineIdentifier
	session.Product = full.Player.Product
	session.Version = full.Player.Version
	session.PlayerAddress = full.Player.Address
	session.UserID = full.User.ID
	session.PlayQueueID = n.PlayQueueID
	session.UpdateOffset(n.ViewOffset, mediasession.ParseState(n.State), e.settings.DurationTolerance)

	if e.bingeTable != nil && e.bingeTable.ShouldBlockSkipping(id.ClientIdentifier) {
		metrics.BingeBlocksTotal.Inc()
		e.decisions.LogBingeBlock(ctx, id.SessionKey, e.bingeTable.Count(id.ClientIdentifier))
		session.CustomOnly = len(session.CustomMarkers) > 0
	}

	admitted := shouldAdd(item, e.settings, e.doc)
	switch {
	case admitted:
		if e.addSession(ctx, session) {
			e.decisions.LogSessionAdded(ctx, id.SessionKey, item.RatingKey)
		} else {
			e.ignoreSession(id)
		}
	case len(session.CustomMarkers) > 0:
		session.CustomOnly = true
		if e.addSession(ctx, session) {
			e.decisions.LogSessionAdded(ctx, id.SessionKey, item.RatingKey)
		} else {
			e.ignoreSession(id)
		}
	default:
		e.ignoreSession(id)
	}
}

func (e *Engine) findServerSession(ctx context.Context, sessionKey string) (*mediaserver.Session, error) {
	sessions, err := e.server.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].SessionKey == sessionKey {
			return &sessions[i], nil
		}
	}
	return nil, nil
}
