// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


// Package mediaserver is the REST/WebSocket client for the media server:
// session snapshots, the alert stream payload shapes, player RPCs, and
// library enumeration for GUID resolution.
package mediaserver

// AlertWrapper is the top-level envelope the server's WebSocket endpoint
// sends for every notification.
type AlertWrapper struct {
	NotificationContainer AlertContainer `json:"NotificationContainer"`
}

// AlertContainer carries one or more notifications of a single type. Only
// PlaySessionStateNotification is consumed by the skip engine; the alert
// listener drops containers of any other type.
type AlertContainer struct {
	Type                         string                    `json:"type"`
	PlaySessionStateNotification []PlaySessionStateNotification `json:"PlaySessionStateNotification,omitempty"`
}

// PlaySessionStateNotification is one playback-state update for a session.
type PlaySessionStateNotification struct {
	SessionKey       string `json:"sessionKey"`
	ClientIdentifier string `json:"clientIdentifier"`
	State            string `json:"state"`
	RatingKey        string `json:"ratingKey"`
	ViewOffset       int64  `json:"viewOffset"`
	PlayQueueID      int64  `json:"playQueueID,omitempty"`
	Guid             string `json:"guid,omitempty"`
}

// SessionsResponse is the payload of GET /status/sessions.
type SessionsResponse struct {
	MediaContainer SessionsContainer `json:"MediaContainer"`
}

// SessionsContainer wraps the array of active playback sessions.
type SessionsContainer struct {
	Size     int       `json:"size"`
	Metadata []Session `json:"Metadata"`
}

// Session is a snapshot of one currently active playback, as returned by
// the sessions() server call.
type Session struct {
	SessionKey           string   `json:"sessionKey"`
	RatingKey            string   `json:"ratingKey"`
	Key                  string   `json:"key"`
	ParentRatingKey      string   `json:"parentRatingKey,omitempty"`
	GrandparentRatingKey string   `json:"grandparentRatingKey,omitempty"`
	Type                 string   `json:"type"`
	Title                string   `json:"title"`
	Duration             int64    `json:"duration,omitempty"`
	ViewOffset           int64    `json:"viewOffset,omitempty"`
	ViewCount            int      `json:"viewCount,omitempty"`
	LibrarySectionTitle  string   `json:"librarySectionTitle,omitempty"`
	Index                int      `json:"index,omitempty"`
	ParentIndex          int      `json:"parentIndex,omitempty"`
	Guid                 string   `json:"guid,omitempty"`
	Markers              []Marker `json:"Marker,omitempty"`
	Chapters             []Chapter `json:"Chapter,omitempty"`
	Media                []Media  `json:"Media,omitempty"`
	Player               Player   `json:"Player"`
	User                 User     `json:"User"`
	Session              SessionLocation `json:"Session"`
}

// SessionLocation reports whether the playback is on the LAN, matching the
// source's location-gated session creation rule.
type SessionLocation struct {
	Location string `json:"location,omitempty"`
}

// Marker is a typed half-open range reported for an item (intro, credits,
// commercial).
type Marker struct {
	Type  string `json:"type"`
	Start int64  `json:"startTimeOffset"`
	End   int64  `json:"endTimeOffset"`
}

// Chapter is a titled half-open range reported for an item.
type Chapter struct {
	Tag   string `json:"tag"`
	Start int64  `json:"startTimeOffset"`
	End   int64  `json:"endTimeOffset"`
}

// Media carries the file-level part list; only used for duration fallback
// when the session-level duration is absent.
type Media struct {
	Duration int64  `json:"duration,omitempty"`
	Parts    []Part `json:"Part,omitempty"`
}

// Part is one physical media file backing an item.
type Part struct {
	Duration int64 `json:"duration,omitempty"`
}

// Player describes the playback device attached to a session.
type Player struct {
	Title            string `json:"title"`
	MachineIdentifier string `json:"machineIdentifier"`
	Address          string `json:"address,omitempty"`
	Product          string `json:"product,omitempty"`
	Version          string `json:"version,omitempty"`
	State            string `json:"state,omitempty"`
	Local            bool   `json:"local,omitempty"`
}

// User identifies the account a session belongs to.
type User struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// LibraryItem is one entry in a library enumeration, used to build the
// GUID-to-rating-key lookup table at startup.
type LibraryItem struct {
	RatingKey   string `json:"ratingKey"`
	Type        string `json:"type"`
	Index       int    `json:"index,omitempty"`       // episode number, when Type == "episode"
	ParentIndex int    `json:"parentIndex,omitempty"` // season number, when Type == "episode" or "season"
	Guid        string `json:"guid,omitempty"`
	Guids       []struct {
		ID string `json:"id"`
	} `json:"Guid,omitempty"`
}
