// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package skipengine

import (
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaitem"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaserver"
)

// itemFromSession converts a server playback snapshot into the engine's
// own Item model, resolving duration from the session's Media part list
// when the top-level field is absent.
func itemFromSession(s mediaserver.Session) mediaitem.Item {
	item := mediaitem.Item{
		Kind:      kindFromType(s.Type),
		RatingKey: s.RatingKey,
		Key:       s.Key,
		Title:     s.Title,
		Library:   s.LibrarySectionTitle,
		Duration:  s.Duration,
		Watched:   s.ViewCount > 0,
		Markers:   make([]mediaitem.Marker, 0, len(s.Markers)),
		Chapters:  make([]mediaitem.Chapter, 0, len(s.Chapters)),
	}
	if item.Duration == 0 {
		for _, m := range s.Media {
			if m.Duration > 0 {
				item.Duration = m.Duration
				break
			}
			for _, p := range m.Parts {
				if p.Duration > 0 {
					item.Duration = p.Duration
					break
				}
			}
		}
	}
	for _, m := range s.Markers {
		item.Markers = append(item.Markers, mediaitem.Marker{Start: m.Start, End: m.End, Type: m.Type})
	}
	for _, c := range s.Chapters {
		item.Chapters = append(item.Chapters, mediaitem.Chapter{Start: c.Start, End: c.End, Title: c.Tag})
	}
	if s.Guid != "" {
		item.GUIDs = []string{s.Guid}
	}
	if item.Kind == mediaitem.KindEpisode {
		item.Episode = mediaitem.Episode{
			ParentKey:      s.ParentRatingKey,
			GrandparentKey: s.GrandparentRatingKey,
			SeasonNumber:   s.ParentIndex,
			EpisodeNumber:  s.Index,
		}
	}
	return item
}

func kindFromType(t string) mediaitem.Kind {
	switch t {
	case "episode":
		return mediaitem.KindEpisode
	case "show":
		return mediaitem.KindShow
	case "season":
		return mediaitem.KindSeason
	default:
		return mediaitem.KindMovie
	}
}
