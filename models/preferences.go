package models

import "time"

// AvatarPosition is the crop offset of a custom avatar image, in percent.
type AvatarPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CustomAvatar is a user-supplied avatar image with crop settings.
type CustomAvatar struct {
	URL      string         `json:"url"`
	Position AvatarPosition `json:"position"`
	Zoom     float64        `json:"zoom"`
}

// SearchEntry is a single recorded search query.
type SearchEntry struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// ProfilePreferences holds per-profile UI and privacy preferences.
type ProfilePreferences struct {
	SearchHistoryEnabled bool          `json:"searchHistoryEnabled"`
	SearchHistory        []SearchEntry `json:"searchHistory,omitempty"`
	Avatar               *CustomAvatar `json:"avatar,omitempty"`
	UpdatedAt            time.Time     `json:"updatedAt"`
}
