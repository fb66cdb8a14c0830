// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package commander

import (
	"errors"
	"net"
	"strings"
)

// Category classifies an RPC failure per the error-handling design, so the
// caller knows whether to drop the session, retry, or surface a hint.
type Category string

const (
	CategoryTransient   Category = "transient"   // read timeout, connection reset
	CategoryBadRequest  Category = "bad_request" // not found / malformed request
	CategoryIncompatible Category = "incompatible"
	CategoryParseError  Category = "parse_error" // malformed XML response, treated as success
)

// errorHints surfaces a human-actionable message for known error-string
// patterns the media server returns.
var errorHints = map[string]string{
	"FrameworkException: Unable to find player with identifier": "player not discoverable; check network-discovery / advertise-as-player settings",
	"HTTPError: HTTP Error 403: Forbidden":                      "forbidden; check the configured Plex token",
}

// Classify inspects an RPC error and returns its taxonomy category.
func Classify(err error) Category {
	if err == nil {
		return ""
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTransient
	}
	msg := err.Error()
	if strings.Contains(msg, "connection reset") || strings.Contains(msg, "EOF") {
		return CategoryTransient
	}
	if strings.Contains(msg, "XML") || strings.Contains(msg, "parse") {
		return CategoryParseError
	}
	return CategoryBadRequest
}

// Hint returns a human-actionable troubleshooting message for a known
// error pattern, or "" if none matches.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for pattern, hint := range errorHints {
		if strings.Contains(msg, pattern) {
			return hint
		}
	}
	return ""
}
