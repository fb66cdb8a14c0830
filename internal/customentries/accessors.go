// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package customentries

// AllowedUsers, AllowedClients, and AllowedKeys expose the document's allow
// list. A key may be the item's own rating key or any ancestor rating key.
func (d *Document) AllowedUsers() []string   { return d.Allowed.Users }
func (d *Document) AllowedClients() []string { return d.Allowed.Clients }
func (d *Document) AllowedKeys() []string    { return d.Allowed.Keys }

// BlockedUsers, BlockedClients, and BlockedKeys expose the document's block
// list; a block match at any level wins over an allow match at any level
// (see shouldAdd in the skip engine).
func (d *Document) BlockedUsers() []string   { return d.Blocked.Users }
func (d *Document) BlockedClients() []string { return d.Blocked.Clients }
func (d *Document) BlockedKeys() []string    { return d.Blocked.Keys }

// AllowedSkipNext and BlockedSkipNext expose the per-player skipNext
// overlay (§4.C step 4).
func (d *Document) AllowedSkipNext() []string { return d.Allowed.SkipNext }
func (d *Document) BlockedSkipNext() []string { return d.Blocked.SkipNext }

// ClientBaseURL returns the configured base URL override for a client title
// or identifier, and whether one was configured.
func (d *Document) ClientBaseURL(titleOrID string) (string, bool) {
	url, ok := d.Clients[titleOrID]
	return url, ok
}

// ModeFor returns the configured mode override for an item or client
// identifier, and whether one was configured.
func (d *Document) ModeFor(idOrClient string) (string, bool) {
	mode, ok := d.Mode[idOrClient]
	return mode, ok
}

// MarkersFor returns the custom markers declared for a rating key, or nil.
func (d *Document) MarkersFor(ratingKey string) []Marker {
	return d.Markers[ratingKey]
}

// OffsetFor returns the offset override declared for a rating key or
// client, and whether one exists.
func (d *Document) OffsetFor(key string) (Offset, bool) {
	o, ok := d.Offsets[key]
	return o, ok
}

// TagsFor returns the tag override declared for a rating key, and whether
// one exists.
func (d *Document) TagsFor(ratingKey string) ([]string, bool) {
	tags, ok := d.Tags[ratingKey]
	return tags, ok
}
