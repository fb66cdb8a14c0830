// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package skipengine

import (
	"strings"

	"github.com/mdhiggins-go/plexautoskip-go/internal/customentries"
	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaitem"
)

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// blockedClientUser reports whether a session's user or player is blocked
// by the custom-entries document's allow/block lists, ahead of any
// content-level gating in shouldAdd.
func blockedClientUser(username, playerTitle, clientIdentifier string, doc *customentries.Document) bool {
	if contains(doc.BlockedUsers(), username) {
		return true
	}
	allowedUsers := doc.AllowedUsers()
	if len(allowedUsers) > 0 && !contains(allowedUsers, username) {
		return true
	}

	allowedClients := doc.AllowedClients()
	if len(allowedClients) > 0 && !contains(allowedClients, playerTitle) && !contains(allowedClients, clientIdentifier) {
		return true
	}
	blockedClients := doc.BlockedClients()
	if contains(blockedClients, playerTitle) || contains(blockedClients, clientIdentifier) {
		return true
	}
	return false
}

// shouldAdd evaluates the content-gating rules: media type, ignored
// libraries, first-episode skip policy, the allowed/blocked rating-key
// chain (item, parent, grandparent), and the skip-unwatched policy. Keys
// are checked item -> parent -> grandparent, and a block at any level
// always wins; an allow only clears the final "nothing matched" block when
// the document declares an allow list at all.
func shouldAdd(item mediaitem.Item, settings Settings, doc *customentries.Document) bool {
	if len(settings.Types) > 0 && !contains(settings.Types, item.Kind.String()) {
		logging.Debug().Str("ratingKey", item.RatingKey).Str("type", item.Kind.String()).Msg("blocking session, type not in approved list")
		return false
	}
	if item.Library != "" && contains(settings.IgnoredLibraries, strings.ToLower(item.Library)) {
		logging.Debug().Str("ratingKey", item.RatingKey).Str("library", item.Library).Msg("blocking session, library is ignored")
		return false
	}

	if item.Kind == mediaitem.KindEpisode {
		if item.Episode.EpisodeNumber == 1 {
			if settings.FirstEpisodeSeason == SkipModeNever {
				return false
			}
			if settings.FirstEpisodeSeason == SkipModeWatched && !item.Watched {
				return false
			}
		}
		if item.IsFirstEpisodeOfSeries() {
			if settings.FirstEpisodeSeries == SkipModeNever {
				return false
			}
			if settings.FirstEpisodeSeries == SkipModeWatched && !item.Watched {
				return false
			}
		}
	}

	if !shouldAddKeys(item, doc) {
		return false
	}

	if !settings.SkipUnwatched && !item.Watched {
		return false
	}
	return true
}

// shouldAddKeys applies the custom-entries allowed/blocked rating-key
// chain, item -> parent -> grandparent.
func shouldAddKeys(item mediaitem.Item, doc *customentries.Document) bool {
	allowed := false
	blockedKeys := doc.BlockedKeys()
	allowedKeys := doc.AllowedKeys()

	if contains(allowedKeys, item.RatingKey) {
		allowed = true
	}
	if contains(blockedKeys, item.RatingKey) {
		return false
	}
	if parent := item.ParentKey(); parent != "" {
		if contains(allowedKeys, parent) {
			allowed = true
		}
		if contains(blockedKeys, parent) {
			return false
		}
	}
	if grandparent := item.GrandparentKey(); grandparent != "" {
		if contains(allowedKeys, grandparent) {
			allowed = true
		}
		if contains(blockedKeys, grandparent) {
			return false
		}
	}
	if len(allowedKeys) > 0 && !allowed {
		return false
	}
	return true
}
