package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"simplstream/models"
	"simplstream/services/ratings"
)

type ratingsService interface {
	Save(profileID string, tmdbID int64, mediaType string, rating int, title, posterPath string, genres []models.Genre) (models.HistoryEntry, error)
	Get(profileID string, tmdbID int64, mediaType string) (models.HistoryEntry, error)
	History(profileID string) ([]models.HistoryEntry, error)
	ContinueWatching(profileID string) ([]models.HistoryEntry, error)
}

var _ ratingsService = (*ratings.Service)(nil)

// HistoryHandler serves ratings and viewing history.
type HistoryHandler struct {
	ratings  ratingsService
	profiles profilesService
}

// NewHistoryHandler creates the history handler.
func NewHistoryHandler(svc ratingsService, profiles profilesService) *HistoryHandler {
	return &HistoryHandler{ratings: svc, profiles: profiles}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]
	if _, err := h.profiles.Get(profileID); err != nil {
		respondProfileError(w, err)
		return
	}

	history, err := h.ratings.History(profileID)
	if err != nil {
		respondHistoryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (h *HistoryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TMDBID     int64          `json:"tmdbId"`
		MediaType  string         `json:"mediaType"`
		Rating     int            `json:"rating"`
		Title      string         `json:"title"`
		PosterPath string         `json:"posterPath"`
		Genres     []models.Genre `json:"genres"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	profileID := mux.Vars(r)["id"]
	if _, err := h.profiles.Get(profileID); err != nil {
		respondProfileError(w, err)
		return
	}

	entry, err := h.ratings.Save(profileID, body.TMDBID, body.MediaType, body.Rating, body.Title, body.PosterPath, body.Genres)
	if err != nil {
		respondHistoryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tmdbID, err := strconv.ParseInt(vars["tmdbId"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tmdb id")
		return
	}

	entry, err := h.ratings.Get(vars["id"], tmdbID, vars["mediaType"])
	if err != nil {
		if errors.Is(err, ratings.ErrEntryNotFound) {
			respondError(w, http.StatusNotFound, "history entry not found")
			return
		}
		respondHistoryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (h *HistoryHandler) ContinueWatching(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]
	if _, err := h.profiles.Get(profileID); err != nil {
		respondProfileError(w, err)
		return
	}

	row, err := h.ratings.ContinueWatching(profileID)
	if err != nil {
		respondHistoryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": row})
}

func respondHistoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ratings.ErrProfileIDRequired),
		errors.Is(err, ratings.ErrTMDBIDRequired),
		errors.Is(err, ratings.ErrMediaTypeRequired),
		errors.Is(err, ratings.ErrInvalidRating):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
