// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package alertlistener maintains a persistent WebSocket subscription to
// the media server's event stream and dispatches each message to the skip
// engine.
package alertlistener

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaserver"
	"github.com/mdhiggins-go/plexautoskip-go/internal/metrics"
)

// OnAlert is invoked for every PlaySessionStateNotification on the stream.
type OnAlert func(mediaserver.PlaySessionStateNotification)

// OnError is invoked when the transport fails. The listener keeps
// reconnecting on its own; OnError is purely informational for the caller.
type OnError func(error)

// Options configures the listener's transport security, per spec §4.A's
// requirement that certificate validation be overridable for self-signed
// servers.
type Options struct {
	IgnoreCerts bool
}

// Listener owns one persistent WebSocket connection and the dedicated
// worker goroutine reading it.
type Listener struct {
	baseURL string
	token   string
	opts    Options

	onAlert OnAlert
	onError OnError

	connMu sync.RWMutex
	conn   *websocket.Conn

	stop chan struct{}
	done chan struct{}
}

// New builds a Listener; call Run to start the worker.
func New(baseURL, token string, opts Options, onAlert OnAlert, onError OnError) *Listener {
	return &Listener{
		baseURL: baseURL,
		token:   token,
		opts:    opts,
		onAlert: onAlert,
		onError: onError,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run blocks, maintaining the connection and reconnecting with exponential
// backoff until ctx is canceled or Stop is called. It is meant to run on a
// dedicated worker (e.g. a suture.Service).
func (l *Listener) Run(ctx context.Context) error {
	defer close(l.done)

	reconnectDelay := 1 * time.Second
	const maxReconnectDelay = 32 * time.Second

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		default:
		}

		conn, err := l.dial(ctx)
		if err != nil {
			l.onError(fmt.Errorf("alertlistener: dial: %w", err))
			if !sleepOrDone(ctx, l.stop, reconnectDelay) {
				return nil
			}
			reconnectDelay = nextBackoff(reconnectDelay, maxReconnectDelay)
			metrics.ListenerReconnectsTotal.Inc()
			continue
		}

		l.setConn(conn)
		metrics.SetListenerConnected(true)
		reconnectDelay = 1 * time.Second
		l.readLoop(ctx)
		l.closeConn()
		metrics.SetListenerConnected(false)
		metrics.ListenerReconnectsTotal.Inc()
	}
}

// Stop closes the socket and blocks until the worker has exited, within one
// pending-read timeout.
func (l *Listener) Stop() {
	close(l.stop)
	l.closeConn()
	<-l.done
}

func (l *Listener) dial(ctx context.Context) (*websocket.Conn, error) {
	wsURL, err := l.buildURL()
	if err != nil {
		return nil, err
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if l.opts.IgnoreCerts {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (l *Listener) buildURL() (string, error) {
	parsed, err := url.Parse(l.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	scheme := "ws"
	if parsed.Scheme == "https" {
		scheme = "wss"
	}
	wsURL := fmt.Sprintf("%s://%s/:/websockets/notifications", scheme, parsed.Host)
	parsedWS, err := url.Parse(wsURL)
	if err != nil {
		return "", fmt.Errorf("parse ws url: %w", err)
	}
	q := parsedWS.Query()
	q.Set("X-Plex-Token", l.token)
	parsedWS.RawQuery = q.Encode()
	return parsedWS.String(), nil
}

func (l *Listener) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		default:
		}

		conn := l.getConn()
		if conn == nil {
			return
		}
		if err := conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			logging.Warn().Err(err).Msg("alertlistener: failed to set read deadline")
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info().Msg("alertlistener: connection closed normally")
				return
			}
			if ctx.Err() != nil {
				return
			}
			l.onError(fmt.Errorf("alertlistener: read: %w", err))
			return
		}
		l.handleMessage(message)
	}
}

func (l *Listener) handleMessage(data []byte) {
	var wrapper mediaserver.AlertWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		logging.Error().Err(err).Msg("alertlistener: failed to parse alert")
		return
	}
	container := wrapper.NotificationContainer
	if container.Type != "playing" {
		return
	}
	for _, notif := range container.PlaySessionStateNotification {
		l.onAlert(notif)
	}
}

func (l *Listener) setConn(c *websocket.Conn) {
	l.connMu.Lock()
	defer l.connMu.Unlock()
	l.conn = c
}

func (l *Listener) getConn() *websocket.Conn {
	l.connMu.RLock()
	defer l.connMu.RUnlock()
	return l.conn
}

func (l *Listener) closeConn() {
	l.connMu.Lock()
	defer l.connMu.Unlock()
	if l.conn != nil {
		l.conn.Close()
		l.conn = nil
	}
}

func nextBackoff(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		return max
	}
	return next
}

func sleepOrDone(ctx context.Context, stop chan struct{}, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-stop:
		return false
	}
}
