// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mdhiggins-go/plexautoskip-go/internal/config"
	"github.com/mdhiggins-go/plexautoskip-go/internal/customentries"
	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaserver"
)

// adjustment bundles the marker-timing rewrite options --offset,
// --startoffset, --endoffset, and --duration.
type adjustment struct {
	offset      int64
	startOffset int64
	endOffset   int64
	haveOffset  bool
	haveStart   bool
	haveEnd     bool
	duration    int64
	haveDur     bool
}

func main() {
	var configPath, path, dumpGUIDs, dumpRatingKeys string
	var writeGUIDs, writeRatingKeys bool
	var offset, startOffset, endOffset, duration int
	flag.StringVar(&configPath, "config", "", "path to the INI config file (overrides PAS_CONFIG)")
	flag.StringVar(&path, "path", "", "path to a custom-entries JSON file or a directory of them")
	flag.BoolVar(&writeGUIDs, "write_guids", false, "rewrite rating keys in the document to content GUIDs")
	flag.BoolVar(&writeRatingKeys, "write_ratingkeys", false, "rewrite content GUIDs in the document to rating keys")
	flag.IntVar(&offset, "offset", 0, "adjust every marker's start and end by this many milliseconds")
	flag.IntVar(&startOffset, "startoffset", 0, "adjust every marker's start by this many milliseconds")
	flag.IntVar(&endOffset, "endoffset", 0, "adjust every marker's end by this many milliseconds")
	flag.IntVar(&duration, "duration", 0, "warn when a marker's length doesn't match this many milliseconds")
	flag.StringVar(&dumpGUIDs, "dump_guids", "", "dump the server's current markers for this rating key or GUID, keyed by GUID")
	flag.StringVar(&dumpRatingKeys, "dump_ratingkeys", "", "dump the server's current markers for this rating key or GUID, keyed by rating key")
	flag.Parse()

	logging.Init(logging.Config{Level: "info"})

	if path == "" {
		path = config.DefaultConfigPath
	}

	adj := adjustment{
		offset:      int64(offset),
		haveOffset:  offset != 0,
		startOffset: int64(startOffset),
		haveStart:   startOffset != 0,
		endOffset:   int64(endOffset),
		haveEnd:     endOffset != 0,
		duration:    int64(duration),
		haveDur:     duration != 0,
	}

	identifier := dumpGUIDs
	useGUID := true
	if identifier == "" {
		identifier = dumpRatingKeys
		useGUID = false
	}

	needsServer := writeGUIDs || writeRatingKeys || identifier != ""

	ctx := context.Background()
	var server *mediaserver.Client
	var lookup *mediaserver.GUIDLookup
	var tags []string

	if needsServer {
		cfg, err := config.Load(configPath)
		if err != nil {
			logging.Error().Err(err).Msg("failed to load configuration")
			os.Exit(1)
		}
		if cfg.Plex.Token == "" || cfg.Server.Address == "" {
			logging.Error().Msg("server connection requires Plex.tv token and Server.address to be configured")
			os.Exit(1)
		}
		server = buildClient(cfg)
		lookup, err = buildLookup(ctx, server)
		if err != nil {
			logging.Error().Err(err).Msg("failed to build GUID lookup from media server")
			os.Exit(1)
		}
		tags = lowercaseAll(cfg.Skip.TagsList())
	}

	if identifier != "" {
		doc, err := dumpMarkers(ctx, server, lookup, identifier, useGUID, tags)
		if err != nil {
			logging.Error().Err(err).Str("identifier", identifier).Msg("failed to dump markers")
			os.Exit(1)
		}
		adjustDocument(doc, adj)
		if err := emitDocument(doc, path); err != nil {
			logging.Error().Err(err).Msg("failed to emit dumped document")
			os.Exit(1)
		}
		os.Exit(0)
	}

	var guidResolver customentries.GUIDResolver
	var ratingKeyResolver customentries.RatingKeyResolver
	if writeGUIDs {
		ratingKeyResolver = lookup
	}
	if writeRatingKeys {
		guidResolver = lookup
	}

	if err := processPath(path, adj, writeGUIDs, guidResolver, writeRatingKeys, ratingKeyResolver); err != nil {
		logging.Error().Err(err).Str("path", path).Msg("audit failed")
		os.Exit(1)
	}
}

func buildClient(cfg *config.Config) *mediaserver.Client {
	scheme := "http"
	if cfg.Server.SSL {
		scheme = "https"
	}
	baseURL := fmt.Sprintf("%s://%s:%d", scheme, cfg.Server.Address, cfg.Server.Port)
	return mediaserver.NewClient(baseURL, cfg.Plex.Token, cfg.Security.IgnoreCerts)
}

func buildLookup(ctx context.Context, server *mediaserver.Client) (*mediaserver.GUIDLookup, error) {
	sections, err := server.Sections(ctx)
	if err != nil {
		return nil, err
	}
	sectionIDs := make([]string, 0, len(sections))
	for _, sec := range sections {
		sectionIDs = append(sectionIDs, sec.Key)
	}
	return mediaserver.BuildGUIDLookup(ctx, server, sectionIDs)
}

func lowercaseAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
