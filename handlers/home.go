package handlers

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"simplstream/models"
	"simplstream/services/metadata"
	"simplstream/services/seasonal"
)

// Browse rows are capped the way the original screen slices them.
const rowLimit = 10

type metadataService interface {
	Trending(ctx context.Context) ([]models.CatalogItem, error)
	PopularMovies(ctx context.Context) ([]models.CatalogItem, error)
	PopularShows(ctx context.Context) ([]models.CatalogItem, error)
	MovieDetails(ctx context.Context, tmdbID int64) (models.TitleDetail, error)
	ShowDetails(ctx context.Context, tmdbID int64) (models.TitleDetail, error)
	Similar(ctx context.Context, mediaType string, tmdbID int64) ([]models.CatalogItem, error)
	Season(ctx context.Context, tmdbID int64, seasonNumber int) (models.SeasonDetail, error)
}

var _ metadataService = (*metadata.Service)(nil)

type seasonalTracker interface {
	SeasonalShownOn(id, campaignKey, dayBucket string) bool
	MarkSeasonalShown(id, campaignKey, dayBucket string) error
}

type historyReader interface {
	ContinueWatching(profileID string) ([]models.HistoryEntry, error)
	IsWatched(profileID string, tmdbID int64, mediaType string) bool
}

type watchlistReader interface {
	Contains(profileID string, tmdbID int64) bool
	List(profileID string) ([]models.WatchlistItem, error)
}

// HomeHandler aggregates the browse screen: hero, catalog rows, the
// profile's watchlist, continue watching and the active seasonal campaign.
type HomeHandler struct {
	metadata  metadataService
	profiles  profilesService
	seasonal  seasonalTracker
	history   historyReader
	watchlist watchlistReader
	now       func() time.Time
}

// NewHomeHandler creates the home handler.
func NewHomeHandler(meta metadataService, profiles profilesService, tracker seasonalTracker, history historyReader, wl watchlistReader) *HomeHandler {
	return &HomeHandler{
		metadata:  meta,
		profiles:  profiles,
		seasonal:  tracker,
		history:   history,
		watchlist: wl,
		now:       time.Now,
	}
}

type homeResponse struct {
	Hero             *models.CatalogItem    `json:"hero,omitempty"`
	TrendingMovies   []models.CatalogItem   `json:"trendingMovies"`
	TrendingShows    []models.CatalogItem   `json:"trendingShows"`
	PopularMovies    []models.CatalogItem   `json:"popularMovies"`
	PopularShows     []models.CatalogItem   `json:"popularShows"`
	Watchlist        []models.WatchlistItem `json:"watchlist"`
	ContinueWatching []models.HistoryEntry  `json:"continueWatching"`
	Seasonal         *seasonalResponse      `json:"seasonal,omitempty"`
}

type seasonalResponse struct {
	models.SeasonalCampaign
	PosterURLs []string `json:"posterUrls"`
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]
	profile, err := h.profiles.Get(profileID)
	if err != nil {
		respondProfileError(w, err)
		return
	}

	ctx := r.Context()
	var (
		wg                                    sync.WaitGroup
		trending, popularMovies, popularShows []models.CatalogItem
	)

	// A failed row degrades to empty rather than failing the screen.
	fetch := func(dst *[]models.CatalogItem, name string, fn func(context.Context) ([]models.CatalogItem, error)) {
		defer wg.Done()
		items, err := fn(ctx)
		if err != nil {
			log.Printf("home: %s row unavailable: %v", name, err)
			return
		}
		*dst = items
	}

	wg.Add(3)
	go fetch(&trending, "trending", h.metadata.Trending)
	go fetch(&popularMovies, "popular movies", h.metadata.PopularMovies)
	go fetch(&popularShows, "popular shows", h.metadata.PopularShows)
	wg.Wait()

	trending = h.markItems(profileID, trending)

	// Hero is the first trending result, before the media-type split.
	var hero *models.CatalogItem
	if len(trending) > 0 {
		first := trending[0]
		hero = &first
	}

	continueWatching, err := h.history.ContinueWatching(profileID)
	if err != nil {
		log.Printf("home: continue watching unavailable: %v", err)
		continueWatching = nil
	}
	watchlistItems, err := h.watchlist.List(profileID)
	if err != nil {
		log.Printf("home: watchlist unavailable: %v", err)
		watchlistItems = nil
	}

	resp := homeResponse{
		Hero:             hero,
		TrendingMovies:   capRow(filterByType(trending, "movie")),
		TrendingShows:    capRow(filterByType(trending, "tv")),
		PopularMovies:    capRow(h.markItems(profileID, popularMovies)),
		PopularShows:     capRow(h.markItems(profileID, popularShows)),
		Watchlist:        watchlistItems,
		ContinueWatching: continueWatching,
	}
	if resp.Watchlist == nil {
		resp.Watchlist = []models.WatchlistItem{}
	}

	if campaign := seasonal.CampaignFor(h.now()); campaign != nil {
		bucket := seasonal.DayBucket(h.now())
		if !h.seasonal.SeasonalShownOn(profile.ID, campaign.Key, bucket) {
			resp.Seasonal = &seasonalResponse{
				SeasonalCampaign: *campaign,
				PosterURLs:       h.campaignPosters(ctx, *campaign),
			}
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// AckSeasonal records that the campaign banner was shown so it stays
// hidden for the rest of the day.
func (h *HomeHandler) AckSeasonal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CampaignKey string `json:"campaignKey"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	profileID := mux.Vars(r)["id"]
	if err := h.seasonal.MarkSeasonalShown(profileID, body.CampaignKey, seasonal.DayBucket(h.now())); err != nil {
		respondProfileError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"acknowledged": true})
}

func (h *HomeHandler) markItems(profileID string, items []models.CatalogItem) []models.CatalogItem {
	if items == nil {
		return []models.CatalogItem{}
	}
	for i := range items {
		items[i].Watched = h.history.IsWatched(profileID, items[i].TMDBID, items[i].MediaType)
		items[i].InWatchlist = h.watchlist.Contains(profileID, items[i].TMDBID)
	}
	return items
}

// campaignPosters resolves fresh poster art for each promoted title,
// falling back to the curated path when the lookup fails.
func (h *HomeHandler) campaignPosters(ctx context.Context, campaign models.SeasonalCampaign) []string {
	urls := make([]string, len(campaign.Items))
	placeholder := metadata.PosterURL("")

	var wg sync.WaitGroup
	for i, item := range campaign.Items {
		wg.Add(1)
		go func(i int, item models.SeasonalItem) {
			defer wg.Done()
			detail, err := h.metadata.MovieDetails(ctx, item.TMDBID)
			if err == nil && detail.PosterURL != "" && detail.PosterURL != placeholder {
				urls[i] = detail.PosterURL
				return
			}
			urls[i] = metadata.PosterURL(item.PosterPath)
		}(i, item)
	}
	wg.Wait()
	return urls
}

func filterByType(items []models.CatalogItem, mediaType string) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.MediaType == mediaType {
			out = append(out, item)
		}
	}
	return out
}

func capRow(items []models.CatalogItem) []models.CatalogItem {
	if items == nil {
		return []models.CatalogItem{}
	}
	if len(items) > rowLimit {
		return items[:rowLimit]
	}
	return items
}
