// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMaterializesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Skip.Mode != "skip" {
		t.Errorf("Skip.Mode = %q, want skip", cfg.Skip.Mode)
	}
	if cfg.Server.Port != 32400 {
		t.Errorf("Server.Port = %d, want 32400", cfg.Server.Port)
	}
	if !cfg.Server.SSL {
		t.Error("Server.SSL should default to true")
	}
	if cfg.Skip.DurationTolerance != 0.995 {
		t.Errorf("Skip.DurationTolerance = %v, want 0.995", cfg.Skip.DurationTolerance)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be written at %s: %v", path, err)
	}
}

func TestLoadPreservesExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")

	content := "[Skip]\nmode = volume\ntags = intro,credits\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to seed config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Skip.Mode != "volume" {
		t.Errorf("Skip.Mode = %q, want volume (preserved)", cfg.Skip.Mode)
	}
	if got := cfg.Skip.TagsList(); len(got) != 2 || got[0] != "intro" || got[1] != "credits" {
		t.Errorf("Skip.TagsList() = %v, want [intro credits]", got)
	}
	// Untouched sections still get materialized.
	if cfg.Server.Port != 32400 {
		t.Errorf("Server.Port = %d, want 32400", cfg.Server.Port)
	}
}

func TestLoadEnvOverridesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env-config.ini")

	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file at PAS_CONFIG path: %v", err)
	}
}

func TestVerbose(t *testing.T) {
	t.Setenv(VerboseEnvVar, "true")
	if !Verbose() {
		t.Error("expected Verbose() to be true when PAS_VERBOSE=true")
	}

	t.Setenv(VerboseEnvVar, "false")
	if Verbose() {
		t.Error("expected Verbose() to be false when PAS_VERBOSE=false")
	}
}

func TestSkipConfigListHelpers(t *testing.T) {
	s := SkipConfig{
		Tags:             "intro, commercial",
		Types:            "episode,movie",
		IgnoredLibraries: "",
		BingeSafeTags:    "commercial",
	}

	if got := s.TagsList(); len(got) != 2 || got[0] != "intro" || got[1] != "commercial" {
		t.Errorf("TagsList() = %v", got)
	}
	if got := s.TypesList(); len(got) != 2 {
		t.Errorf("TypesList() = %v", got)
	}
	if got := s.IgnoredLibrariesList(); got != nil {
		t.Errorf("IgnoredLibrariesList() = %v, want nil", got)
	}
	if got := s.BingeSafeTagsList(); len(got) != 1 || got[0] != "commercial" {
		t.Errorf("BingeSafeTagsList() = %v", got)
	}
}
