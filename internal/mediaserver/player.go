// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package mediaserver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// PlayerClient issues playback-control RPCs against one player, either
// directly (proxyThroughServer=false, using the player's own base URL) or
// relayed through the media server (proxyThroughServer=true).
type PlayerClient struct {
	server            *Client
	machineIdentifier string
	baseURL           string
	proxyThroughServer bool
}

// NewPlayerClient builds a PlayerClient. baseURL is the player's direct
// address; when empty, RPCs are relayed through the server as with
// proxyThroughServer. Every RPC carries machineIdentifier as the
// X-Plex-Target-Client-Identifier query parameter.
func NewPlayerClient(server *Client, machineIdentifier, baseURL string, proxyThroughServer bool) *PlayerClient {
	return &PlayerClient{server: server, machineIdentifier: machineIdentifier, baseURL: baseURL, proxyThroughServer: proxyThroughServer}
}

// SeekTo issues a seek to the given absolute offset in milliseconds.
func (p *PlayerClient) SeekTo(ctx context.Context, offsetMS int64) error {
	q := url.Values{}
	q.Set("offset", strconv.FormatInt(offsetMS, 10))
	q.Set("type", "video")
	return p.command(ctx, "/player/playback/seekTo", q)
}

// SetVolume sets the player's audio volume, 0-100.
func (p *PlayerClient) SetVolume(ctx context.Context, level int) error {
	q := url.Values{}
	q.Set("volume", strconv.Itoa(level))
	q.Set("type", "music,video,photo")
	return p.command(ctx, "/player/playback/setParameters", q)
}

// Stop halts playback.
func (p *PlayerClient) Stop(ctx context.Context) error {
	return p.command(ctx, "/player/playback/stop", nil)
}

// PlayMedia starts playback of a play queue at a given item, used by the
// commander to advance to the next episode.
func (p *PlayerClient) PlayMedia(ctx context.Context, playQueueID int64, machineIdentifier string, key string) error {
	q := url.Values{}
	q.Set("playQueueID", strconv.FormatInt(playQueueID, 10))
	q.Set("key", key)
	q.Set("machineIdentifier", machineIdentifier)
	q.Set("type", "video")
	return p.command(ctx, "/player/playback/playMedia", q)
}

func (p *PlayerClient) command(ctx context.Context, path string, query url.Values) error {
	base := p.baseURL
	if p.proxyThroughServer || base == "" {
		base = p.server.baseURL + "/player/proxy"
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("X-Plex-Target-Client-Identifier", p.machineIdentifier)

	u := base + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build player command: %w", err)
	}
	req.Header.Set("X-Plex-Token", p.server.token)

	resp, err := p.server.doRequestWithRateLimit(req)
	if err != nil {
		return fmt.Errorf("player command %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("player command %s: http %d", path, resp.StatusCode)
	}
	return nil
}
