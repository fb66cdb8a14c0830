// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package mediaserver

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
)

// Client talks to the media server's REST API: session snapshots, library
// enumeration, and the player/play-queue RPCs the commander issues.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a Client. ignoreCerts skips TLS certificate validation,
// per the Security.ignore-certs option for self-signed servers.
func NewClient(baseURL, token string, ignoreCerts bool) *Client {
	transport := http.DefaultTransport
	if ignoreCerts {
		transport = &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}} //nolint:gosec
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Sessions fetches the current playback session snapshot.
func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	var resp SessionsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/status/sessions", nil, &resp); err != nil {
		return nil, fmt.Errorf("mediaserver: sessions: %w", err)
	}
	return resp.MediaContainer.Metadata, nil
}

// Section is one entry in the server's library section listing.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Sections enumerates the server's library sections, so the GUID lookup
// can be built by walking every one of them at startup.
func (c *Client) Sections(ctx context.Context) ([]Section, error) {
	var resp struct {
		MediaContainer struct {
			Directory []Section `json:"Directory"`
		} `json:"MediaContainer"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/library/sections", nil, &resp); err != nil {
		return nil, fmt.Errorf("mediaserver: sections: %w", err)
	}
	return resp.MediaContainer.Directory, nil
}

// Metadata fetches a single item's metadata, including its markers and
// chapters, for the audit CLI's dump modes.
func (c *Client) Metadata(ctx context.Context, ratingKey string) (*Session, error) {
	var resp SessionsResponse
	path := fmt.Sprintf("/library/metadata/%s", ratingKey)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("mediaserver: metadata %s: %w", ratingKey, err)
	}
	if len(resp.MediaContainer.Metadata) == 0 {
		return nil, fmt.Errorf("mediaserver: metadata %s: not found", ratingKey)
	}
	item := resp.MediaContainer.Metadata[0]
	return &item, nil
}

// AllLeaves enumerates every episode beneath a show or season rating key,
// for the audit CLI's dump modes when the identifier names a show or
// season rather than a single episode or movie.
func (c *Client) AllLeaves(ctx context.Context, ratingKey string) ([]Session, error) {
	var resp SessionsResponse
	path := fmt.Sprintf("/library/metadata/%s/allLeaves", ratingKey)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("mediaserver: all leaves %s: %w", ratingKey, err)
	}
	return resp.MediaContainer.Metadata, nil
}

// LibraryAll enumerates every item in a library section, for building the
// GUID-to-rating-key lookup table used by the custom-entries resolver.
func (c *Client) LibraryAll(ctx context.Context, sectionID string) ([]LibraryItem, error) {
	var resp struct {
		MediaContainer struct {
			Metadata []LibraryItem `json:"Metadata"`
		} `json:"MediaContainer"`
	}
	path := fmt.Sprintf("/library/sections/%s/all", sectionID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("mediaserver: library all: %w", err)
	}
	return resp.MediaContainer.Metadata, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if query != nil {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doRequestWithRateLimit(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mediaserver: %s %s: http %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// doRequestWithRateLimit retries on HTTP 429 with exponential backoff,
// honoring a Retry-After header when present.
func (c *Client) doRequestWithRateLimit(req *http.Request) (*http.Response, error) {
	const maxRetries = 5
	baseDelay := 1 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		if attempt == maxRetries {
			return nil, fmt.Errorf("rate limit exceeded after %d retries", maxRetries)
		}

		retryDelay := baseDelay * (1 << attempt)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, perr := time.ParseDuration(retryAfter + "s"); perr == nil {
				retryDelay = seconds
			}
		}

		logging.Warn().Dur("retry_delay", retryDelay).Int("attempt", attempt+1).Msg("media server rate limited, retrying")

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("unreachable: retry loop exhausted without returning")
}
