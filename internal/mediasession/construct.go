// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package mediasession

import (
	"strings"
	"time"

	"github.com/mdhiggins-go/plexautoskip-go/internal/customentries"
	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaitem"
)

// Defaults carries the config-derived starting rule set a session inherits
// before any custom-entries overlay is applied.
type Defaults struct {
	LeftOffset  int64
	RightOffset int64
	Tags        []string
	Mode        string
	CommandDelay int64 // ms
}

// Construct builds a Session by layering the custom-entries document over
// defaults, in grandparent -> parent -> item order, per the construction
// algorithm: each ancestor level may add markers, overwrite offsets, tags,
// or mode, and the cascade bit on each layer controls whether previously
// collected markers survive once a more specific layer also has entries.
func Construct(id ID, item mediaitem.Item, playerTitle, clientIdentifier string, doc *customentries.Document, defaults Defaults) *Session {
	s := New(id, item)
	s.LeftOffset = defaults.LeftOffset
	s.RightOffset = defaults.RightOffset
	s.Tags = append([]string(nil), defaults.Tags...)
	s.Mode = defaults.Mode
	s.CommandDelay = time.Duration(defaults.CommandDelay) * time.Millisecond

	var collected []CustomMarker
	for _, key := range ancestorKeys(item) {
		if key == "" {
			continue
		}
		if markers, ok := doc.Markers[key]; ok {
			collected = purgeNonCascading(collected)
			for _, m := range markers {
				cm, err := ParseCustomMarker(m.Start, m.End, m.Type, m.Mode, m.Cascade, key, item.Duration)
				if err != nil {
					logging.Error().Err(err).Str("key", key).Msg("dropping invalid custom marker")
					continue
				}
				collected = append(collected, cm)
			}
		}
		if offset, ok := doc.OffsetFor(key); ok {
			if offset.Start != nil {
				s.LeftOffset = *offset.Start
			}
			if offset.End != nil {
				s.RightOffset = *offset.End
			}
			if offset.Tags != nil {
				s.OffsetTags = offset.Tags
			}
		}
		if tags, ok := doc.TagsFor(key); ok {
			s.Tags = tags
		}
		if mode, ok := doc.ModeFor(key); ok {
			s.Mode = mode
		}
	}
	s.CustomMarkers = collected

	for _, playerKey := range []string{playerTitle, clientIdentifier} {
		if playerKey == "" {
			continue
		}
		if mode, ok := doc.ModeFor(playerKey); ok {
			s.Mode = mode
		}
		if offset, ok := doc.OffsetFor(playerKey); ok && offset.Command != nil {
			s.CommandDelay = time.Duration(*offset.Command) * time.Millisecond
		}
	}

	s.SkipNext = resolveSkipNext(doc, playerTitle, clientIdentifier, defaults)

	lowerTags := make([]string, len(s.Tags))
	for i, t := range s.Tags {
		lowerTags[i] = strings.ToLower(t)
	}
	s.Tags = lowerTags

	s.Item.Markers = effectiveMarkers(item.Markers, s.Tags)
	s.Item.Chapters = effectiveChapters(item.Chapters, s.Tags)

	if last, ok := item.LastChapter(); ok {
		s.LastChapter = last
		s.HasLastChapter = true
	}

	if base, ok := doc.ClientBaseURL(playerTitle); ok {
		s.BaseURL = base
	} else if base, ok := doc.ClientBaseURL(clientIdentifier); ok {
		s.BaseURL = base
	} else {
		s.ProxyThroughServer = true
	}

	return s
}

func ancestorKeys(item mediaitem.Item) []string {
	return []string{item.GrandparentKey(), item.ParentKey(), item.RatingKey}
}

// purgeNonCascading drops any previously collected marker whose cascade bit
// is false, since a more specific ancestor level is about to add its own.
func purgeNonCascading(collected []CustomMarker) []CustomMarker {
	kept := collected[:0:0]
	for _, m := range collected {
		if m.Cascade {
			kept = append(kept, m)
		}
	}
	return kept
}

func resolveSkipNext(doc *customentries.Document, playerTitle, clientIdentifier string, defaults Defaults) bool {
	skipNext := false
	for _, k := range doc.AllowedSkipNext() {
		if k == playerTitle || k == clientIdentifier {
			skipNext = true
		}
	}
	for _, k := range doc.BlockedSkipNext() {
		if k == playerTitle || k == clientIdentifier {
			skipNext = false
		}
	}
	return skipNext
}

func effectiveMarkers(markers []mediaitem.Marker, tags []string) []mediaitem.Marker {
	var out []mediaitem.Marker
	for _, m := range markers {
		if tagMatches(tags, m.Type) {
			out = append(out, m)
		}
	}
	return out
}

func effectiveChapters(chapters []mediaitem.Chapter, tags []string) []mediaitem.Chapter {
	var out []mediaitem.Chapter
	for _, c := range chapters {
		if chapterTagMatches(tags, c.Title) {
			out = append(out, c)
		}
	}
	return out
}

// tagMatches reports whether a marker type is selected by the tag set,
// either as a raw tag or with the "m:" marker-namespace prefix.
func tagMatches(tags []string, markerType string) bool {
	lower := strings.ToLower(markerType)
	for _, t := range tags {
		if t == lower || t == "m:"+lower {
			return true
		}
	}
	return false
}

// chapterTagMatches mirrors tagMatches for chapter titles, using the "c:"
// chapter-namespace prefix.
func chapterTagMatches(tags []string, title string) bool {
	lower := strings.ToLower(title)
	for _, t := range tags {
		if t == lower || t == "c:"+lower {
			return true
		}
	}
	return false
}
