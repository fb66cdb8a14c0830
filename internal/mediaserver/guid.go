// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package mediaserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// GUIDLookup resolves between external content GUIDs (imdb://, tmdb://,
// tvdb://) and server-local rating keys. It is built once at startup from
// LibraryAll and is read-only thereafter, so no locking is needed — per the
// source's unbounded-lookup-table-built-once pattern, made explicit here.
type GUIDLookup struct {
	guidToKey map[string]string
	keyToGUID map[string]string
	// seasonEpisode maps "showGUID.season" and "showGUID.season.episode" to
	// a rating key, for the suffixed-GUID addressing form.
	seasonEpisode map[string]string
}

// BuildGUIDLookup enumerates every section's library and indexes each
// item's GUIDs against its rating key, plus a season/episode index for
// shows whose library exposes episode numbering.
func BuildGUIDLookup(ctx context.Context, c *Client, sectionIDs []string) (*GUIDLookup, error) {
	l := &GUIDLookup{
		guidToKey:     make(map[string]string),
		keyToGUID:     make(map[string]string),
		seasonEpisode: make(map[string]string),
	}
	for _, sectionID := range sectionIDs {
		items, err := c.LibraryAll(ctx, sectionID)
		if err != nil {
			return nil, fmt.Errorf("mediaserver: build guid lookup: %w", err)
		}
		for _, item := range items {
			l.index(item)
		}
	}
	return l, nil
}

func (l *GUIDLookup) index(item LibraryItem) {
	guids := guidCandidates(item)
	for _, guid := range guids {
		if _, ok := l.keyToGUID[item.RatingKey]; !ok {
			l.keyToGUID[item.RatingKey] = guid
		}
		switch item.Type {
		case "season":
			l.seasonEpisode[fmt.Sprintf("%s.%d", guid, item.ParentIndex)] = item.RatingKey
		case "episode":
			l.seasonEpisode[fmt.Sprintf("%s.%d.%d", guid, item.ParentIndex, item.Index)] = item.RatingKey
		default:
			l.guidToKey[guid] = item.RatingKey
		}
	}
}

func guidCandidates(item LibraryItem) []string {
	var out []string
	if item.Guid != "" {
		out = append(out, item.Guid)
	}
	for _, g := range item.Guids {
		out = append(out, g.ID)
	}
	return out
}

// ResolveGUID implements customentries.GUIDResolver. A suffix of
// ".season" or ".season.episode" addresses a season or episode of a show
// GUID rather than the show itself.
func (l *GUIDLookup) ResolveGUID(guid string) (string, error) {
	if key, ok := l.guidToKey[guid]; ok {
		return key, nil
	}
	if key, ok := l.resolveSuffixed(guid); ok {
		return key, nil
	}
	return "", fmt.Errorf("mediaserver: no rating key found for guid %q", guid)
}

func (l *GUIDLookup) resolveSuffixed(guid string) (string, bool) {
	parts := strings.Split(guid, ".")
	if len(parts) < 2 {
		return "", false
	}
	for _, p := range parts[1:] {
		if _, err := strconv.Atoi(p); err != nil {
			return "", false
		}
	}
	if key, ok := l.seasonEpisode[guid]; ok {
		return key, true
	}
	return "", false
}

// ResolveRatingKey implements customentries.RatingKeyResolver.
func (l *GUIDLookup) ResolveRatingKey(ratingKey string) (string, error) {
	if guid, ok := l.keyToGUID[ratingKey]; ok {
		return guid, nil
	}
	return "", fmt.Errorf("mediaserver: no guid found for rating key %q", ratingKey)
}
