// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package customentries

import (
	"errors"
	"testing"
)

func TestDecodeEmpty(t *testing.T) {
	doc, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if doc.NeedsGUIDResolution() {
		t.Error("empty document should not need GUID resolution")
	}
}

func TestDecodeMarkersSingleAndList(t *testing.T) {
	data := []byte(`{
		"markers": {
			"123": {"start": 0, "end": 1000, "type": "intro"},
			"456": [{"start": 0, "end": 500}, {"start": 2000, "end": 3000}]
		}
	}`)

	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(doc.Markers["123"]) != 1 {
		t.Errorf("expected single marker wrapped into list, got %d", len(doc.Markers["123"]))
	}
	if len(doc.Markers["456"]) != 2 {
		t.Errorf("expected 2 markers, got %d", len(doc.Markers["456"]))
	}
}

func TestKeyIsGUID(t *testing.T) {
	cases := map[string]bool{
		"123":                false,
		"imdb://tt1234567":   true,
		"tmdb://12345":       true,
		"tvdb://12345.1.2":   true,
		"plain-rating-key-1": false,
	}
	for k, want := range cases {
		if got := KeyIsGUID(k); got != want {
			t.Errorf("KeyIsGUID(%q) = %v, want %v", k, got, want)
		}
	}
}

func TestNeedsGUIDResolution(t *testing.T) {
	doc, _ := Decode([]byte(`{"markers": {"imdb://tt1": [{"start":0,"end":1}]}}`))
	if !doc.NeedsGUIDResolution() {
		t.Error("expected NeedsGUIDResolution to be true")
	}

	doc2, _ := Decode([]byte(`{"markers": {"123": [{"start":0,"end":1}]}}`))
	if doc2.NeedsGUIDResolution() {
		t.Error("expected NeedsGUIDResolution to be false for rating-key-only document")
	}
}

type fakeGUIDResolver struct {
	resolved map[string]string
	err      error
}

func (f *fakeGUIDResolver) ResolveGUID(guid string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if rk, ok := f.resolved[guid]; ok {
		return rk, nil
	}
	return guid, nil
}

func TestConvertToRatingKeys(t *testing.T) {
	doc, _ := Decode([]byte(`{
		"markers": {"imdb://tt1": [{"start":0,"end":1000}]},
		"allowed": {"keys": ["imdb://tt1", "555"]}
	}`))

	resolver := &fakeGUIDResolver{resolved: map[string]string{"imdb://tt1": "42"}}
	doc.ConvertToRatingKeys(resolver)

	if _, ok := doc.Markers["imdb://tt1"]; ok {
		t.Error("expected GUID key to be removed from markers")
	}
	if _, ok := doc.Markers["42"]; !ok {
		t.Error("expected resolved rating key to be present in markers")
	}
	if len(doc.Allowed.Keys) != 2 {
		t.Errorf("expected 2 allowed keys after resolution, got %v", doc.Allowed.Keys)
	}
}

func TestConvertToRatingKeysDropsUnresolved(t *testing.T) {
	doc, _ := Decode([]byte(`{"markers": {"imdb://tt1": [{"start":0,"end":1000}]}}`))
	resolver := &fakeGUIDResolver{err: errors.New("not found")}
	doc.ConvertToRatingKeys(resolver)

	if len(doc.Markers) != 0 {
		t.Errorf("expected unresolved GUID to be dropped, got %v", doc.Markers)
	}
}
