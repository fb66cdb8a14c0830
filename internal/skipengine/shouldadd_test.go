// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package skipengine

import (
	"testing"

	"github.com/mdhiggins-go/plexautoskip-go/internal/customentries"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaitem"
)

func TestShouldAddBlocksDisallowedType(t *testing.T) {
	item := mediaitem.Item{Kind: mediaitem.KindMovie, Watched: true}
	settings := Settings{Types: []string{"episode"}}
	if shouldAdd(item, settings, &customentries.Document{}) {
		t.Error("expected movie to be blocked when only episode is approved")
	}
}

func TestShouldAddBlocksIgnoredLibrary(t *testing.T) {
	item := mediaitem.Item{Kind: mediaitem.KindMovie, Library: "Kids", Watched: true}
	settings := Settings{IgnoredLibraries: []string{"kids"}}
	if shouldAdd(item, settings, &customentries.Document{}) {
		t.Error("expected item in ignored library to be blocked")
	}
}

func TestShouldAddBlocksFirstEpisodeOfSeriesWhenNever(t *testing.T) {
	item := mediaitem.Item{
		Kind:    mediaitem.KindEpisode,
		Watched: true,
		Episode: mediaitem.Episode{SeasonNumber: 1, EpisodeNumber: 1},
	}
	settings := Settings{FirstEpisodeSeries: SkipModeNever, FirstEpisodeSeason: SkipModeAlways}
	if shouldAdd(item, settings, &customentries.Document{}) {
		t.Error("expected S01E01 to be blocked when first-episode-series is never")
	}
}

func TestShouldAddAllowsFirstEpisodeOfSeasonWhenAlways(t *testing.T) {
	item := mediaitem.Item{
		Kind:    mediaitem.KindEpisode,
		Watched: false,
		Episode: mediaitem.Episode{SeasonNumber: 2, EpisodeNumber: 1},
	}
	settings := Settings{FirstEpisodeSeason: SkipModeAlways, FirstEpisodeSeries: SkipModeAlways, SkipUnwatched: true}
	if !shouldAdd(item, settings, &customentries.Document{}) {
		t.Error("expected season-2 E01 to be allowed when first-episode-season is always")
	}
}

func TestShouldAddBlocksUnwatchedWhenSkipUnwatchedFalse(t *testing.T) {
	item := mediaitem.Item{Kind: mediaitem.KindMovie, Watched: false}
	settings := Settings{SkipUnwatched: false}
	if shouldAdd(item, settings, &customentries.Document{}) {
		t.Error("expected unwatched item to be blocked when skip-unwatched is false")
	}
}

func TestShouldAddKeysBlockedKeyWins(t *testing.T) {
	doc := &customentries.Document{Allowed: customentries.AccessList{Keys: []string{"1"}}, Blocked: customentries.AccessList{Keys: []string{"1"}}}
	item := mediaitem.Item{RatingKey: "1"}
	if shouldAddKeys(item, doc) {
		t.Error("expected blocked key to win over allowed key at the same level")
	}
}

func TestShouldAddKeysAllowListExcludesUnlisted(t *testing.T) {
	doc := &customentries.Document{Allowed: customentries.AccessList{Keys: []string{"100"}}}
	item := mediaitem.Item{RatingKey: "999"}
	if shouldAddKeys(item, doc) {
		t.Error("expected item not on allow list to be blocked when an allow list exists")
	}
}

func TestBlockedClientUserBlocksBlockedUser(t *testing.T) {
	doc := &customentries.Document{Blocked: customentries.AccessList{Users: []string{"bob"}}}
	if !blockedClientUser("bob", "Roku", "c1", doc) {
		t.Error("expected blocked user to be blocked")
	}
}

func TestBlockedClientUserAllowsWhenNoLists(t *testing.T) {
	doc := &customentries.Document{}
	if blockedClientUser("anyone", "Roku", "c1", doc) {
		t.Error("expected no lists configured to allow everyone")
	}
}
