// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdhiggins-go/plexautoskip-go/internal/customentries"
	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
)

// adjustDocument rewrites every marker's start/end per adj, clamps negative
// results to zero, and logs a warning for markers whose length, measured
// before the adjustment, is negative or disagrees with adj.duration.
func adjustDocument(doc *customentries.Document, adj adjustment) {
	for key, markers := range doc.Markers {
		for i := range markers {
			m := &markers[i]
			diff := m.End - m.Start
			switch {
			case adj.haveOffset:
				m.Start += adj.offset
				m.End += adj.offset
			default:
				if adj.haveStart {
					m.Start += adj.startOffset
				}
				if adj.haveEnd {
					m.End += adj.endOffset
				}
			}
			if diff < 0 {
				logging.Warn().Str("key", key).Msg("marker end precedes start, likely invalid")
			}
			if adj.haveDur && diff != adj.duration {
				logging.Warn().Str("key", key).Int64("expected_ms", adj.duration).Int64("actual_ms", diff).Msg("marker duration does not match expected value")
			}
			if m.Start < 0 {
				m.Start = 0
			}
			if m.End < 0 {
				m.End = 0
			}
		}
		doc.Markers[key] = markers
	}
}

// processPath applies adj and any GUID/rating-key conversion to the
// custom-entries document(s) at path, which may be a single file or a
// directory walked recursively.
func processPath(path string, adj adjustment, writeGUIDs bool, guidResolver customentries.GUIDResolver, writeRatingKeys bool, ratingKeyResolver customentries.RatingKeyResolver) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", path, err)
	}
	if !info.IsDir() {
		return processFile(path, adj, writeGUIDs, guidResolver, writeRatingKeys, ratingKeyResolver)
	}
	return filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || strings.ToLower(filepath.Ext(p)) != ".json" {
			return nil
		}
		return processFile(p, adj, writeGUIDs, guidResolver, writeRatingKeys, ratingKeyResolver)
	})
}

func processFile(path string, adj adjustment, writeGUIDs bool, guidResolver customentries.GUIDResolver, writeRatingKeys bool, ratingKeyResolver customentries.RatingKeyResolver) error {
	doc, err := customentries.LoadFile(path)
	if err != nil {
		return err
	}
	logging.Info().Str("path", path).Msg("processing custom entries document")

	adjustDocument(doc, adj)

	if writeRatingKeys && guidResolver != nil {
		doc.ConvertToRatingKeys(guidResolver)
	}
	if writeGUIDs && ratingKeyResolver != nil {
		doc.ConvertToGUIDs(ratingKeyResolver)
	}

	analyzeMarkers(path, doc)

	return customentries.SaveFile(path, doc)
}

func analyzeMarkers(path string, doc *customentries.Document) {
	total := len(doc.Markers)
	populated := 0
	for _, m := range doc.Markers {
		if len(m) > 0 {
			populated++
		}
	}
	pct := 0.0
	if total > 0 {
		pct = float64(populated) / float64(total) * 100
	}
	logging.Info().Str("path", path).Int("total", total).Int("populated", populated).Int("empty", total-populated).Float64("populated_pct", pct).Msg("marker summary")
}

// emitDocument writes doc to path if path names a .json file, otherwise
// prints it to stdout.
func emitDocument(doc *customentries.Document, path string) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return customentries.SaveFile(path, doc)
	}
	data, err := customentries.Encode(doc)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
