// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package config loads and materializes the skipper's INI configuration file.
package config

// Config holds all settings read from the INI configuration file.
type Config struct {
	Plex     PlexConfig     `ini:"Plex.tv"`
	Server   ServerConfig   `ini:"Server"`
	Security SecurityConfig `ini:"Security"`
	Skip     SkipConfig     `ini:"Skip"`
	Offsets  OffsetsConfig  `ini:"Offsets"`
	Volume   VolumeConfig   `ini:"Volume"`
}

// PlexConfig holds the [Plex.tv] account settings. Only Token is read, as
// the auth token for the server at Server.Address; Username, Password and
// ServerName are loaded but not used to discover a server.
type PlexConfig struct {
	Username   string `ini:"username"`
	Password   string `ini:"password"`
	Token      string `ini:"token"`
	ServerName string `ini:"servername"`
}

// ServerConfig holds the direct server connection settings.
type ServerConfig struct {
	Address string `ini:"address"`
	SSL     bool   `ini:"ssl"`
	Port    int    `ini:"port"`
}

// SecurityConfig holds TLS verification settings.
type SecurityConfig struct {
	IgnoreCerts bool `ini:"ignore-certs"`
}

// SkipConfig holds the rule engine's global defaults. Per-item and per-player
// overrides live in the custom-entries document and are layered on top of
// these at session construction.
type SkipConfig struct {
	Mode                string  `ini:"mode"`
	Tags                string  `ini:"tags"`
	Types               string  `ini:"types"`
	IgnoredLibraries    string  `ini:"ignored-libraries"`
	LastChapter         float64 `ini:"last-chapter"`
	Unwatched           bool    `ini:"unwatched"`
	FirstEpisodeSeries  string  `ini:"first-episode-series"`
	FirstEpisodeSeason  string  `ini:"first-episode-season"`
	Next                bool    `ini:"next"`
	Binge               int     `ini:"binge"`
	BingeSafeTags       string  `ini:"binge-safe-tags"`
	BingeSameShowOnly   bool    `ini:"binge-same-show-only"`
	SkipNextMax         int     `ini:"skip-next-max"`
	DurationTolerance   float64 `ini:"duration-tolerance"`
}

// OffsetsConfig holds the global left/right/command offsets applied when a
// session has no item- or player-specific override.
type OffsetsConfig struct {
	Start   int    `ini:"start"`
	End     int    `ini:"end"`
	Command int    `ini:"command"`
	Tags    string `ini:"tags"`
}

// VolumeConfig holds the low/high volume levels used by mode=volume sessions.
type VolumeConfig struct {
	Low  int `ini:"low"`
	High int `ini:"high"`
}
