// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package notify sends a webhook notification when the skip engine hits a
// fatal condition; cmd/server sends one for each error the supervisor tree
// reports.
// It replaces the original's one-shot Plex push-notification script with a
// standing, always-available operator alert.
package notify

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
)

// Notifier posts a JSON payload to a configured webhook URL.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

// New builds a Notifier. An empty webhookURL disables sending, so callers
// can construct one unconditionally and let Notify become a no-op.
func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Event is the payload posted to the webhook.
type Event struct {
	Condition string `json:"condition"`
	Message   string `json:"message"`
}

// NotifyFatal posts a fatal-condition event to the configured webhook. It
// logs and swallows delivery failures rather than returning them, since a
// failing notification must never bring down the process it's reporting on.
func (n *Notifier) NotifyFatal(ctx context.Context, condition, message string) {
	if n.webhookURL == "" {
		return
	}

	body, err := json.Marshal(Event{Condition: condition, Message: message})
	if err != nil {
		logging.Error().Err(err).Msg("notify: failed to encode event")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		logging.Error().Err(err).Msg("notify: failed to build request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		logging.Error().Err(err).Msg("notify: webhook delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logging.Error().Int("status", resp.StatusCode).Msg("notify: webhook rejected event")
		return
	}
	logging.Info().Str("condition", condition).Msg("notify: webhook delivered")
}
