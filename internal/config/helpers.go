// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package config

import "strings"

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TagsList returns the configured default tag set.
func (s SkipConfig) TagsList() []string { return splitCSV(s.Tags) }

// TypesList returns the configured media types eligible for tracking.
func (s SkipConfig) TypesList() []string { return splitCSV(s.Types) }

// IgnoredLibrariesList returns the libraries excluded from tracking.
func (s SkipConfig) IgnoredLibrariesList() []string { return splitCSV(s.IgnoredLibraries) }

// BingeSafeTagsList returns the tag set preserved during a binge block.
func (s SkipConfig) BingeSafeTagsList() []string { return splitCSV(s.BingeSafeTags) }

// TagsList returns the configured tags that gate the start/end offset overlay.
func (o OffsetsConfig) TagsList() []string { return splitCSV(o.Tags) }
