// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdhiggins-go/plexautoskip-go/internal/customentries"
	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaserver"
)

// dumpMarkers fetches the server's current markers and chapters, filtered
// to tags, for the item named by identifier (a rating key or a GUID,
// optionally suffixed for a season/episode). A show or season identifier
// expands to every episode beneath it. The returned document is keyed by
// GUID when useGUID is true, by rating key otherwise.
func dumpMarkers(ctx context.Context, server *mediaserver.Client, lookup *mediaserver.GUIDLookup, identifier string, useGUID bool, tags []string) (*customentries.Document, error) {
	ratingKey := identifier
	if customentries.KeyIsGUID(identifier) {
		resolved, err := lookup.ResolveGUID(identifier)
		if err != nil {
			return nil, fmt.Errorf("resolve identifier %s: %w", identifier, err)
		}
		ratingKey = resolved
	}

	item, err := server.Metadata(ctx, ratingKey)
	if err != nil {
		return nil, err
	}

	sessions := []mediaserver.Session{*item}
	if item.Type == "show" || item.Type == "season" {
		sessions, err = server.AllLeaves(ctx, ratingKey)
		if err != nil {
			return nil, fmt.Errorf("enumerate episodes beneath %s: %w", ratingKey, err)
		}
	}

	doc, _ := customentries.Decode(nil)
	for _, s := range sessions {
		key := s.RatingKey
		if useGUID {
			if guid, err := lookup.ResolveRatingKey(key); err == nil {
				key = guid
			} else {
				logging.Warn().Str("rating_key", key).Msg("unable to resolve rating key to GUID, keeping rating key")
			}
		}
		doc.Markers[key] = markersForSession(s, tags)
	}
	return doc, nil
}

func markersForSession(s mediaserver.Session, tags []string) customentries.MarkerList {
	var list customentries.MarkerList
	for _, m := range s.Markers {
		if tagAllowed(m.Type, tags) {
			list = append(list, customentries.Marker{Start: m.Start, End: m.End})
		}
	}
	for _, c := range s.Chapters {
		if tagAllowed(c.Tag, tags) {
			list = append(list, customentries.Marker{Start: c.Start, End: c.End})
		}
	}
	return list
}

func tagAllowed(tag string, tags []string) bool {
	if tag == "" {
		return false
	}
	lower := strings.ToLower(tag)
	for _, t := range tags {
		if t == lower {
			return true
		}
	}
	return false
}
