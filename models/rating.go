package models

import "time"

// HistoryEntry records that a profile rated or watched a title.
type HistoryEntry struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profileId"`
	TMDBID     int64     `json:"tmdbId"`
	MediaType  string    `json:"mediaType"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	PosterPath string    `json:"posterPath,omitempty"`
	Genres     []Genre   `json:"genres,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
