// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package binge

import (
	"testing"

	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaitem"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediasession"
)

func newEpisodeSession(clientID, ratingKey, grandparentKey string) *mediasession.Session {
	item := mediaitem.Item{
		Kind:      mediaitem.KindEpisode,
		RatingKey: ratingKey,
		Episode:   mediaitem.Episode{GrandparentKey: grandparentKey},
	}
	s := mediasession.New(mediasession.ID{SessionKey: "sk", ClientIdentifier: clientID}, item)
	s.UserID = "user-1"
	s.Tags = []string{"intro", "credits"}
	s.State = mediasession.StatePlaying
	return s
}

func TestTableBlocksFirstNEpisodes(t *testing.T) {
	table := NewTable(3, []string{"commercial"}, false)
	s1 := newEpisodeSession("client-1", "ep-1", "show-1")

	table.Update(s1, "user-1")
	if !table.ShouldBlockSkipping("client-1") {
		t.Error("expected first episode to be blocked")
	}
	if len(s1.Tags) != 0 {
		t.Errorf("expected tags filtered to safe set, got %v", s1.Tags)
	}
}

func TestTableUnblocksAfterBlockCount(t *testing.T) {
	table := NewTable(2, []string{"commercial"}, false)
	s1 := newEpisodeSession("client-1", "ep-1", "show-1")
	table.Update(s1, "user-1")

	s2 := newEpisodeSession("client-1", "ep-2", "show-1")
	table.Update(s2, "user-1")
	if !table.ShouldBlockSkipping("client-1") {
		t.Error("expected second episode to still be blocked")
	}

	s3 := newEpisodeSession("client-1", "ep-3", "show-1")
	table.Update(s3, "user-1")
	if table.ShouldBlockSkipping("client-1") {
		t.Error("expected third episode (count=3 > blockcount=2) to be unblocked")
	}
}

func TestTableDisabledWhenBlockCountZero(t *testing.T) {
	table := NewTable(0, nil, false)
	s1 := newEpisodeSession("client-1", "ep-1", "show-1")
	table.Update(s1, "user-1")
	if table.ShouldBlockSkipping("client-1") {
		t.Error("expected binge tracking disabled when blockCount is 0")
	}
	if table.Len() != 0 {
		t.Error("expected no session to be tracked when binge is disabled")
	}
}

func TestTableSameShowOnlyStopsAdvanceAcrossShows(t *testing.T) {
	table := NewTable(5, nil, true)
	s1 := newEpisodeSession("client-1", "ep-1", "show-1")
	table.Update(s1, "user-1")

	s2 := newEpisodeSession("client-1", "ep-99", "show-2")
	table.Update(s2, "user-1")

	if table.sessions["client-1"].Count != 1 {
		t.Errorf("expected count to stay at 1 across a show change with sameShowOnly, got %d", table.sessions["client-1"].Count)
	}
}

func TestTableCleanEvictsStale(t *testing.T) {
	table := NewTable(3, nil, false)
	s1 := newEpisodeSession("client-1", "ep-1", "show-1")
	table.Update(s1, "user-1")
	table.sessions["client-1"].LastUpdate = table.sessions["client-1"].LastUpdate.Add(-Timeout * 2)

	evicted := table.Clean()
	if len(evicted) != 1 || evicted[0] != "client-1" {
		t.Errorf("expected client-1 to be evicted, got %v", evicted)
	}
	if table.Len() != 0 {
		t.Error("expected table to be empty after eviction")
	}
}
