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

// PlayQueue is a server-side ordered list of items a player advances
// through, used by the commander's skip-next-at-end-of-item path.
type PlayQueue struct {
	ID           int64  `json:"playQueueID"`
	SelectedItemID int64 `json:"playQueueSelectedItemID"`
	Items        []PlayQueueItem `json:"Metadata"`
}

// PlayQueueItem is one entry in a PlayQueue.
type PlayQueueItem struct {
	RatingKey string `json:"ratingKey"`
	Key       string `json:"key"`
	QueueItemID int64 `json:"playQueueItemID"`
}

// GetPlayQueue fetches an existing play queue by id.
func (c *Client) GetPlayQueue(ctx context.Context, id int64) (*PlayQueue, error) {
	var resp struct {
		MediaContainer PlayQueue `json:"MediaContainer"`
	}
	path := "/playQueues/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("mediaserver: get play queue: %w", err)
	}
	return &resp.MediaContainer, nil
}

// CreatePlayQueue creates a new play queue rooted at a library key,
// starting playback at startItemKey.
func (c *Client) CreatePlayQueue(ctx context.Context, uri, startItemKey string) (*PlayQueue, error) {
	q := url.Values{}
	q.Set("uri", uri)
	q.Set("type", "video")
	q.Set("continuous", "1")
	if startItemKey != "" {
		q.Set("key", startItemKey)
	}

	var resp struct {
		MediaContainer PlayQueue `json:"MediaContainer"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/playQueues", q, &resp); err != nil {
		return nil, fmt.Errorf("mediaserver: create play queue: %w", err)
	}
	return &resp.MediaContainer, nil
}
