package models

// SeasonalItem is a curated title featured by a seasonal campaign.
type SeasonalItem struct {
	TMDBID     int64  `json:"tmdbId"`
	Title      string `json:"title"`
	Year       string `json:"year"`
	PosterPath string `json:"posterPath"`
}

// SeasonalCampaign is a curated collection shown during a date window.
type SeasonalCampaign struct {
	Key         string         `json:"key"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Gradient    string         `json:"gradient"`
	Items       []SeasonalItem `json:"items"`
}
