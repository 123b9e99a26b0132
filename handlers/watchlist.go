package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"simplstream/models"
	"simplstream/services/watchlist"
)

type watchlistService interface {
	Add(profileID string, tmdbID int64, mediaType, title, posterPath string) (models.WatchlistItem, error)
	Remove(profileID string, tmdbID int64) error
	Contains(profileID string, tmdbID int64) bool
	List(profileID string) ([]models.WatchlistItem, error)
}

var _ watchlistService = (*watchlist.Service)(nil)

// WatchlistHandler serves per-profile watchlist operations.
type WatchlistHandler struct {
	watchlist watchlistService
	profiles  profilesService
}

// NewWatchlistHandler creates the watchlist handler.
func NewWatchlistHandler(svc watchlistService, profiles profilesService) *WatchlistHandler {
	return &WatchlistHandler{watchlist: svc, profiles: profiles}
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]
	if _, err := h.profiles.Get(profileID); err != nil {
		respondProfileError(w, err)
		return
	}

	items, err := h.watchlist.List(profileID)
	if err != nil {
		respondWatchlistError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TMDBID     int64  `json:"tmdbId"`
		MediaType  string `json:"mediaType"`
		Title      string `json:"title"`
		PosterPath string `json:"posterPath"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	profileID := mux.Vars(r)["id"]
	if _, err := h.profiles.Get(profileID); err != nil {
		respondProfileError(w, err)
		return
	}

	item, err := h.watchlist.Add(profileID, body.TMDBID, body.MediaType, body.Title, body.PosterPath)
	if err != nil {
		respondWatchlistError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tmdbID, err := strconv.ParseInt(vars["tmdbId"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tmdb id")
		return
	}

	if err := h.watchlist.Remove(vars["id"], tmdbID); err != nil {
		respondWatchlistError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

func (h *WatchlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tmdbID, err := strconv.ParseInt(vars["tmdbId"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tmdb id")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{
		"inWatchlist": h.watchlist.Contains(vars["id"], tmdbID),
	})
}

func respondWatchlistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, watchlist.ErrProfileIDRequired),
		errors.Is(err, watchlist.ErrTMDBIDRequired),
		errors.Is(err, watchlist.ErrMediaTypeRequired):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
