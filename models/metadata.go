package models

// Genre is a TMDB genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CatalogItem is a title as listed in browse rows.
type CatalogItem struct {
	TMDBID      int64   `json:"tmdbId"`
	MediaType   string  `json:"mediaType"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview,omitempty"`
	PosterURL   string  `json:"posterUrl,omitempty"`
	BackdropURL string  `json:"backdropUrl,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	VoteAverage float64 `json:"voteAverage,omitempty"`
	Watched     bool    `json:"watched,omitempty"`
	InWatchlist bool    `json:"inWatchlist,omitempty"`
}

// Video is a trailer or clip attached to a title.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// CastMember is an actor credit on a title.
type CastMember struct {
	Name       string `json:"name"`
	Character  string `json:"character,omitempty"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// SeasonSummary is a season as listed on a show's detail page.
type SeasonSummary struct {
	SeasonNumber int    `json:"seasonNumber"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episodeCount"`
	PosterURL    string `json:"posterUrl,omitempty"`
}

// Episode is a single episode within a season.
type Episode struct {
	EpisodeNumber int    `json:"episodeNumber"`
	Name          string `json:"name"`
	Overview      string `json:"overview,omitempty"`
	StillURL      string `json:"stillUrl,omitempty"`
	AirDate       string `json:"airDate,omitempty"`
	Runtime       int    `json:"runtime,omitempty"`
}

// SeasonDetail is a season with its full episode list.
type SeasonDetail struct {
	SeasonNumber int       `json:"seasonNumber"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview,omitempty"`
	Episodes     []Episode `json:"episodes"`
}

// TitleDetail is the full metadata for a movie or show.
type TitleDetail struct {
	TMDBID      int64           `json:"tmdbId"`
	MediaType   string          `json:"mediaType"`
	Title       string          `json:"title"`
	Overview    string          `json:"overview,omitempty"`
	Tagline     string          `json:"tagline,omitempty"`
	PosterURL   string          `json:"posterUrl,omitempty"`
	BackdropURL string          `json:"backdropUrl,omitempty"`
	ReleaseDate string          `json:"releaseDate,omitempty"`
	Runtime     int             `json:"runtime,omitempty"`
	VoteAverage float64         `json:"voteAverage,omitempty"`
	Genres      []Genre         `json:"genres,omitempty"`
	Videos      []Video         `json:"videos,omitempty"`
	Cast        []CastMember    `json:"cast,omitempty"`
	Seasons     []SeasonSummary `json:"seasons,omitempty"`
}
