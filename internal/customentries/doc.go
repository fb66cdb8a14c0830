// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


/*
Package customentries decodes and resolves the custom-entries JSON document:
per-item custom markers, per-item/per-client offset overrides, allow/block
lists, per-client base URL overrides, and per-item/per-client mode overrides.

# Identifiers

Document keys may be a server-local rating key or an external content GUID
(imdb://, tmdb://, tvdb://), optionally suffixed with ".season" or
".season.episode" to address a season or episode of a show GUID. On startup
the engine resolves every GUID key via GUIDResolver so the rest of the
system only ever deals in rating keys:

	doc, _ := customentries.Decode(data)
	if doc.NeedsGUIDResolution() {
	    doc.ConvertToRatingKeys(resolver)
	}

# Auditor conversions

The CLI auditor collaborator additionally supports the reverse direction,
rewriting rating keys back to GUIDs for a portable document:

	doc.ConvertToGUIDs(resolver)
*/
package customentries
