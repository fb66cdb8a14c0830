// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package customentries

import (
	"strings"

	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
)

// KeyIsGUID reports whether key is an external GUID rather than a
// server-local rating key.
func KeyIsGUID(key string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// NeedsGUIDResolution reports whether any identifier in the document is a
// GUID and therefore requires walking the library before the engine can use
// the document's rating-key-keyed maps.
func (d *Document) NeedsGUIDResolution() bool {
	for k := range d.Markers {
		if KeyIsGUID(k) {
			return true
		}
	}
	for k := range d.Offsets {
		if KeyIsGUID(k) {
			return true
		}
	}
	for _, k := range d.Allowed.Keys {
		if KeyIsGUID(k) {
			return true
		}
	}
	for _, k := range d.Blocked.Keys {
		if KeyIsGUID(k) {
			return true
		}
	}
	return false
}

// GUIDResolver resolves an external content GUID, optionally suffixed with
// ".season" or ".season.episode" to address a season or episode of a show
// GUID, to the server-local rating key it corresponds to.
type GUIDResolver interface {
	ResolveGUID(guid string) (ratingKey string, err error)
}

// RatingKeyResolver resolves a server-local rating key back to a content
// GUID, used by the auditor's --write_guids mode.
type RatingKeyResolver interface {
	ResolveRatingKey(ratingKey string) (guid string, err error)
}

// ConvertToRatingKeys rewrites every GUID-keyed identifier in the document
// to its resolved rating key, dropping entries that cannot be resolved.
// This is the only conversion the engine itself performs, and only at
// startup.
func (d *Document) ConvertToRatingKeys(resolver GUIDResolver) {
	for k := range d.Markers {
		if !KeyIsGUID(k) {
			continue
		}
		ratingKey, err := resolver.ResolveGUID(k)
		if err != nil || ratingKey == k {
			logging.Error().Str("guid", k).Msg("unable to resolve GUID to rating key in custom markers")
			delete(d.Markers, k)
			continue
		}
		d.Markers[ratingKey] = d.Markers[k]
		delete(d.Markers, k)
	}
	for k := range d.Offsets {
		if !KeyIsGUID(k) {
			continue
		}
		ratingKey, err := resolver.ResolveGUID(k)
		if err != nil || ratingKey == k {
			logging.Error().Str("guid", k).Msg("unable to resolve GUID to rating key in custom offsets")
			delete(d.Offsets, k)
			continue
		}
		d.Offsets[ratingKey] = d.Offsets[k]
		delete(d.Offsets, k)
	}
	d.Allowed.Keys = convertKeyList(d.Allowed.Keys, resolver, "allowedKeys")
	d.Blocked.Keys = convertKeyList(d.Blocked.Keys, resolver, "blockedKeys")
}

func convertKeyList(keys []string, resolver GUIDResolver, field string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !KeyIsGUID(k) {
			out = append(out, k)
			continue
		}
		ratingKey, err := resolver.ResolveGUID(k)
		if err != nil || ratingKey == k {
			logging.Error().Str("guid", k).Str("field", field).Msg("unable to resolve GUID to rating key")
			continue
		}
		out = append(out, ratingKey)
	}
	return out
}

// ConvertToGUIDs rewrites every rating-key-keyed identifier in the document
// to its content GUID. Used by the auditor collaborator, never by the
// engine itself.
func (d *Document) ConvertToGUIDs(resolver RatingKeyResolver) {
	for k := range d.Markers {
		if KeyIsGUID(k) {
			continue
		}
		guid, err := resolver.ResolveRatingKey(k)
		if err != nil || guid == k {
			logging.Error().Str("rating_key", k).Msg("unable to resolve rating key to GUID in custom markers")
			continue
		}
		d.Markers[guid] = d.Markers[k]
		delete(d.Markers, k)
	}
	for k := range d.Offsets {
		if KeyIsGUID(k) {
			continue
		}
		guid, err := resolver.ResolveRatingKey(k)
		if err != nil || guid == k {
			logging.Error().Str("rating_key", k).Msg("unable to resolve rating key to GUID in custom offsets")
			continue
		}
		d.Offsets[guid] = d.Offsets[k]
		delete(d.Offsets, k)
	}
	d.Allowed.Keys = convertToGUIDList(d.Allowed.Keys, resolver)
	d.Blocked.Keys = convertToGUIDList(d.Blocked.Keys, resolver)
}

func convertToGUIDList(keys []string, resolver RatingKeyResolver) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if KeyIsGUID(k) {
			out = append(out, k)
			continue
		}
		guid, err := resolver.ResolveRatingKey(k)
		if err != nil || guid == k {
			logging.Error().Str("rating_key", k).Msg("unable to resolve rating key to GUID")
			continue
		}
		out = append(out, guid)
	}
	return out
}
