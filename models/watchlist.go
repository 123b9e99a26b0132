package models

import "time"

// WatchlistItem is a saved title on a profile's watchlist.
type WatchlistItem struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profileId"`
	TMDBID     int64     `json:"tmdbId"`
	MediaType  string    `json:"mediaType"`
	Title      string    `json:"title"`
	PosterPath string    `json:"posterPath,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
