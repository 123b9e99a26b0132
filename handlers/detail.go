package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"simplstream/models"
	"simplstream/services/metadata"
)

// DetailHandler aggregates the title detail screen: full metadata plus a
// similar-titles row and the viewer's own state.
type DetailHandler struct {
	metadata  metadataService
	history   historyReader
	watchlist watchlistReader
}

// NewDetailHandler creates the detail handler.
func NewDetailHandler(meta metadataService, history historyReader, wl watchlistReader) *DetailHandler {
	return &DetailHandler{metadata: meta, history: history, watchlist: wl}
}

type detailResponse struct {
	models.TitleDetail
	Similar     []models.CatalogItem `json:"similar"`
	Watched     bool                 `json:"watched"`
	InWatchlist bool                 `json:"inWatchlist"`
}

func (h *DetailHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mediaType := strings.TrimSpace(vars["mediaType"])
	if mediaType != "movie" && mediaType != "tv" {
		respondError(w, http.StatusBadRequest, "media type must be movie or tv")
		return
	}
	tmdbID, err := strconv.ParseInt(vars["tmdbId"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tmdb id")
		return
	}

	ctx := r.Context()

	var (
		wg         sync.WaitGroup
		detail     models.TitleDetail
		detailErr  error
		similar    []models.CatalogItem
		similarErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if mediaType == "movie" {
			detail, detailErr = h.metadata.MovieDetails(ctx, tmdbID)
		} else {
			detail, detailErr = h.metadata.ShowDetails(ctx, tmdbID)
		}
	}()
	go func() {
		defer wg.Done()
		similar, similarErr = h.metadata.Similar(ctx, mediaType, tmdbID)
	}()
	wg.Wait()

	if detailErr != nil {
		if errors.Is(detailErr, metadata.ErrNotFound) {
			respondError(w, http.StatusNotFound, "title not found")
			return
		}
		respondError(w, http.StatusBadGateway, "metadata provider unavailable")
		return
	}

	// The similar row is decoration; the screen renders without it.
	if similarErr != nil {
		similar = []models.CatalogItem{}
	}

	resp := detailResponse{
		TitleDetail: detail,
		Similar:     similar,
	}
	if profileID := strings.TrimSpace(r.URL.Query().Get("profile")); profileID != "" {
		resp.Watched = h.history.IsWatched(profileID, tmdbID, mediaType)
		resp.InWatchlist = h.watchlist.Contains(profileID, tmdbID)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *DetailHandler) Season(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tmdbID, err := strconv.ParseInt(vars["tmdbId"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tmdb id")
		return
	}
	seasonNumber, err := strconv.Atoi(vars["seasonNumber"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid season number")
		return
	}

	season, err := h.metadata.Season(r.Context(), tmdbID, seasonNumber)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			respondError(w, http.StatusNotFound, "season not found")
			return
		}
		respondError(w, http.StatusBadGateway, "metadata provider unavailable")
		return
	}
	respondJSON(w, http.StatusOK, season)
}
