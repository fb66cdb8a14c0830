// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
)

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "PAS_CONFIG"

// VerboseEnvVar, when set to "true", enables trace-level alert logging.
const VerboseEnvVar = "PAS_VERBOSE"

// DefaultConfigPath is used when PAS_CONFIG is unset.
const DefaultConfigPath = "config.ini"

// defaultValue is one (section, key, value) triple materialized into the
// config file on first run or whenever an option is missing. Order is
// preserved so the rewritten file reads the way a hand-written one would.
type defaultValue struct {
	section string
	key     string
	value   string
}

var defaults = []defaultValue{
	{"Plex.tv", "username", ""},
	{"Plex.tv", "password", ""},
	{"Plex.tv", "token", ""},
	{"Plex.tv", "servername", ""},

	{"Server", "address", ""},
	{"Server", "ssl", "true"},
	{"Server", "port", "32400"},

	{"Security", "ignore-certs", "false"},

	{"Skip", "mode", "skip"},
	{"Skip", "tags", "intro,commercial"},
	{"Skip", "types", "episode,movie"},
	{"Skip", "ignored-libraries", ""},
	{"Skip", "last-chapter", "0.9"},
	{"Skip", "unwatched", "false"},
	{"Skip", "first-episode-series", "never"},
	{"Skip", "first-episode-season", "never"},
	{"Skip", "next", "false"},
	{"Skip", "binge", "0"},
	{"Skip", "binge-safe-tags", ""},
	{"Skip", "binge-same-show-only", "false"},
	{"Skip", "skip-next-max", "0"},
	{"Skip", "duration-tolerance", "0.995"},

	{"Offsets", "start", "0"},
	{"Offsets", "end", "0"},
	{"Offsets", "command", "500"},
	{"Offsets", "tags", ""},

	{"Volume", "low", "20"},
	{"Volume", "high", "100"},
}

// Load reads the config file at path (or the PAS_CONFIG-overridden path when
// path is empty), materializes any missing options with their defaults,
// rewrites the file if anything was added, and returns the parsed Config.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path == "" {
		path = DefaultConfigPath
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve path: %w", err)
	}

	var f *ini.File
	if _, statErr := os.Stat(path); statErr == nil {
		f, err = ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else {
		f = ini.Empty()
	}

	dirty := false
	for _, d := range defaults {
		sec, err := f.GetSection(d.section)
		if err != nil {
			sec, err = f.NewSection(d.section)
			if err != nil {
				return nil, fmt.Errorf("config: create section %s: %w", d.section, err)
			}
		}
		if !sec.HasKey(d.key) {
			sec.Key(d.key).SetValue(d.value)
			dirty = true
		}
	}

	if dirty {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			logging.Error().Err(err).Str("path", path).Msg("failed to create config directory")
		} else if err := f.SaveTo(path); err != nil {
			logging.Error().Err(err).Str("path", path).Msg("failed to write config file")
		}
	}

	cfg := &Config{}
	if err := f.Section("Plex.tv").MapTo(&cfg.Plex); err != nil {
		return nil, fmt.Errorf("config: map Plex.tv: %w", err)
	}
	if err := f.Section("Server").MapTo(&cfg.Server); err != nil {
		return nil, fmt.Errorf("config: map Server: %w", err)
	}
	if err := f.Section("Security").MapTo(&cfg.Security); err != nil {
		return nil, fmt.Errorf("config: map Security: %w", err)
	}
	if err := f.Section("Skip").MapTo(&cfg.Skip); err != nil {
		return nil, fmt.Errorf("config: map Skip: %w", err)
	}
	if err := f.Section("Offsets").MapTo(&cfg.Offsets); err != nil {
		return nil, fmt.Errorf("config: map Offsets: %w", err)
	}
	if err := f.Section("Volume").MapTo(&cfg.Volume); err != nil {
		return nil, fmt.Errorf("config: map Volume: %w", err)
	}

	return cfg, nil
}

// Verbose reports whether PAS_VERBOSE=true is set in the environment.
func Verbose() bool {
	return os.Getenv(VerboseEnvVar) == "true"
}
