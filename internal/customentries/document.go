// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package customentries holds the user's declarative overrides: per-item
// custom markers and offsets, allow/block lists, per-client base URL
// overrides, and per-item/per-client mode overrides. It also resolves
// external content GUIDs to server-local rating keys.
package customentries

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// prefixes lists the external GUID schemes the document may use in place of
// a server-local rating key.
var prefixes = []string{"imdb://", "tmdb://", "tvdb://"}

// Marker is a user-declared custom marker. Start/End follow the same
// absolute-or-negative-from-end convention as server markers; Cascade
// controls whether the marker survives when a descendant entry also
// declares markers for the same key.
type Marker struct {
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Type    string `json:"type,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Cascade bool   `json:"cascade,omitempty"`
}

// MarkerList unmarshals either a single marker object or an array of
// markers, matching the document's historical shorthand of writing one
// marker as a bare object instead of a single-element list.
type MarkerList []Marker

// UnmarshalJSON accepts either `{...}` or `[{...}, ...]`.
func (m *MarkerList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var list []Marker
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*m = list
		return nil
	}
	var single Marker
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*m = MarkerList{single}
	return nil
}

// MarshalJSON always writes the list form.
func (m MarkerList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]Marker(m))
}

// Offset is a per-item or per-client override of the global left/right/command
// offsets and the tag gate that enables them.
type Offset struct {
	Start   *int64   `json:"start,omitempty"`
	End     *int64   `json:"end,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Command *int64   `json:"command,omitempty"`
}

// AccessList is the shape shared by the document's "allowed" and "blocked"
// sections.
type AccessList struct {
	Users    []string `json:"users,omitempty"`
	Clients  []string `json:"clients,omitempty"`
	Keys     []string `json:"keys,omitempty"`
	SkipNext []string `json:"skip-next,omitempty"`
}

// Document is the decoded custom-entries file. All sections are optional;
// a zero-value Document behaves as "no overrides configured".
type Document struct {
	Markers map[string]MarkerList `json:"markers,omitempty"`
	Offsets map[string]Offset     `json:"offsets,omitempty"`
	Tags    map[string][]string   `json:"tags,omitempty"`
	Allowed AccessList            `json:"allowed,omitempty"`
	Blocked AccessList            `json:"blocked,omitempty"`
	Clients map[string]string     `json:"clients,omitempty"`
	Mode    map[string]string     `json:"mode,omitempty"`
}

// Decode parses a custom-entries JSON document. Unknown fields are ignored
// by goccy/go-json's default decoding but untouched keys round-trip because
// every section is a plain map keyed by the document's own identifiers.
func Decode(data []byte) (*Document, error) {
	doc := &Document{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, err
		}
	}
	if doc.Markers == nil {
		doc.Markers = map[string]MarkerList{}
	}
	if doc.Offsets == nil {
		doc.Offsets = map[string]Offset{}
	}
	if doc.Tags == nil {
		doc.Tags = map[string][]string{}
	}
	if doc.Clients == nil {
		doc.Clients = map[string]string{}
	}
	if doc.Mode == nil {
		doc.Mode = map[string]string{}
	}
	return doc, nil
}

// Encode serializes the document back to JSON with stable field ordering.
func Encode(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// LoadFile reads and decodes the custom-entries document at path. A
// missing file is not an error; it yields an empty Document so the engine
// runs with no overrides configured, matching the original's
// create-on-first-write behavior.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Decode(nil)
		}
		return nil, fmt.Errorf("customentries: read %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("customentries: parse %s: %w", path, err)
	}
	return doc, nil
}

// SaveFile encodes doc and writes it to path, used by the auditor CLI's
// rewrite modes.
func SaveFile(path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("customentries: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("customentries: write %s: %w", path, err)
	}
	return nil
}
