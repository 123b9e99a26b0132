package metadata

import "simplstream/models"

// Wire types mirroring TMDB's JSON shapes, mapped into models before
// leaving the package.

type listResponse struct {
	Results []listResult `json:"results"`
}

type listResult struct {
	ID           int64   `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
}

// catalogItems maps results to catalog items. fallbackType fills in the
// media type for endpoints that do not include one per result. Results
// that are neither movies nor shows (people in trending) are dropped.
func (r listResponse) catalogItems(fallbackType string) []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(r.Results))
	for _, result := range r.Results {
		mediaType := result.MediaType
		if mediaType == "" {
			mediaType = fallbackType
		}
		if mediaType != "movie" && mediaType != "tv" {
			continue
		}

		title := result.Title
		releaseDate := result.ReleaseDate
		if mediaType == "tv" {
			title = result.Name
			releaseDate = result.FirstAirDate
		}

		items = append(items, models.CatalogItem{
			TMDBID:      result.ID,
			MediaType:   mediaType,
			Title:       title,
			Overview:    result.Overview,
			PosterURL:   PosterURL(result.PosterPath),
			BackdropURL: BackdropURL(result.BackdropPath),
			ReleaseDate: releaseDate,
			VoteAverage: result.VoteAverage,
		})
	}
	return items
}

type detailResponse struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Name         string         `json:"name"`
	Overview     string         `json:"overview"`
	Tagline      string         `json:"tagline"`
	PosterPath   string         `json:"poster_path"`
	BackdropPath string         `json:"backdrop_path"`
	ReleaseDate  string         `json:"release_date"`
	FirstAirDate string         `json:"first_air_date"`
	Runtime      int            `json:"runtime"`
	VoteAverage  float64        `json:"vote_average"`
	Genres       []models.Genre `json:"genres"`
	Videos       videosBlock    `json:"videos"`
	Credits      creditsBlock   `json:"credits"`
	Seasons      []seasonBlock  `json:"seasons"`
}

type videosBlock struct {
	Results []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

type creditsBlock struct {
	Cast []struct {
		Name        string `json:"name"`
		Character   string `json:"character"`
		ProfilePath string `json:"profile_path"`
	} `json:"cast"`
}

type seasonBlock struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	PosterPath   string `json:"poster_path"`
}

func (r detailResponse) titleDetail(mediaType string) models.TitleDetail {
	title := r.Title
	releaseDate := r.ReleaseDate
	if mediaType == "tv" {
		title = r.Name
		releaseDate = r.FirstAirDate
	}

	detail := models.TitleDetail{
		TMDBID:      r.ID,
		MediaType:   mediaType,
		Title:       title,
		Overview:    r.Overview,
		Tagline:     r.Tagline,
		PosterURL:   PosterURL(r.PosterPath),
		BackdropURL: BackdropURL(r.BackdropPath),
		ReleaseDate: releaseDate,
		Runtime:     r.Runtime,
		VoteAverage: r.VoteAverage,
		Genres:      r.Genres,
	}

	for _, v := range r.Videos.Results {
		detail.Videos = append(detail.Videos, models.Video{
			Key:  v.Key,
			Name: v.Name,
			Site: v.Site,
			Type: v.Type,
		})
	}

	// Cast is capped in the UI, carry the top twenty credits.
	for i, c := range r.Credits.Cast {
		if i == 20 {
			break
		}
		member := models.CastMember{Name: c.Name, Character: c.Character}
		if c.ProfilePath != "" {
			member.ProfileURL = ImageURL(c.ProfilePath, profileSize)
		}
		detail.Cast = append(detail.Cast, member)
	}

	for _, season := range r.Seasons {
		detail.Seasons = append(detail.Seasons, models.SeasonSummary{
			SeasonNumber: season.SeasonNumber,
			Name:         season.Name,
			EpisodeCount: season.EpisodeCount,
			PosterURL:    PosterURL(season.PosterPath),
		})
	}

	return detail
}

type seasonResponse struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	Episodes     []struct {
		EpisodeNumber int    `json:"episode_number"`
		Name          string `json:"name"`
		Overview      string `json:"overview"`
		StillPath     string `json:"still_path"`
		AirDate       string `json:"air_date"`
		Runtime       int    `json:"runtime"`
	} `json:"episodes"`
}

func (r seasonResponse) seasonDetail() models.SeasonDetail {
	detail := models.SeasonDetail{
		SeasonNumber: r.SeasonNumber,
		Name:         r.Name,
		Overview:     r.Overview,
		Episodes:     make([]models.Episode, 0, len(r.Episodes)),
	}
	for _, ep := range r.Episodes {
		episode := models.Episode{
			EpisodeNumber: ep.EpisodeNumber,
			Name:          ep.Name,
			Overview:      ep.Overview,
			AirDate:       ep.AirDate,
			Runtime:       ep.Runtime,
		}
		if ep.StillPath != "" {
			episode.StillURL = BackdropURL(ep.StillPath)
		}
		detail.Episodes = append(detail.Episodes, episode)
	}
	return detail
}
