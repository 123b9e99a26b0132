package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"simplstream/models"
	"simplstream/services/preferences"
)

type preferencesService interface {
	Get(profileID string) (models.ProfilePreferences, error)
	SetSearchHistoryEnabled(profileID string, enabled bool) error
	RecordSearch(profileID, query string) error
	SearchHistory(profileID string) ([]models.SearchEntry, error)
	ClearSearchHistory(profileID string) error
	SetAvatar(profileID string, avatar models.CustomAvatar) error
	ClearAvatar(profileID string) error
}

var _ preferencesService = (*preferences.Service)(nil)

// PreferencesHandler serves per-profile preference operations.
type PreferencesHandler struct {
	preferences preferencesService
	profiles    profilesService
}

// NewPreferencesHandler creates the preferences handler.
func NewPreferencesHandler(svc preferencesService, profiles profilesService) *PreferencesHandler {
	return &PreferencesHandler{preferences: svc, profiles: profiles}
}

func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["id"]
	if _, err := h.profiles.Get(profileID); err != nil {
		respondProfileError(w, err)
		return
	}

	prefs, err := h.preferences.Get(profileID)
	if err != nil {
		respondPreferencesError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

func (h *PreferencesHandler) SetSearchHistoryEnabled(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	profileID := mux.Vars(r)["id"]
	if _, err := h.profiles.Get(profileID); err != nil {
		respondProfileError(w, err)
		return
	}

	if err := h.preferences.SetSearchHistoryEnabled(profileID, body.Enabled); err != nil {
		respondPreferencesError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"enabled": body.Enabled})
}

func (h *PreferencesHandler) RecordSearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	if err := h.preferences.RecordSearch(mux.Vars(r)["id"], body.Query); err != nil {
		respondPreferencesError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"recorded": true})
}

func (h *PreferencesHandler) SearchHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.preferences.SearchHistory(mux.Vars(r)["id"])
	if err != nil {
		respondPreferencesError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"searches": history})
}

func (h *PreferencesHandler) ClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.preferences.ClearSearchHistory(mux.Vars(r)["id"]); err != nil {
		respondPreferencesError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

func (h *PreferencesHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var body models.CustomAvatar
	if !decodeBody(w, r, &body) {
		return
	}

	profileID := mux.Vars(r)["id"]
	if _, err := h.profiles.Get(profileID); err != nil {
		respondProfileError(w, err)
		return
	}

	if err := h.preferences.SetAvatar(profileID, body); err != nil {
		respondPreferencesError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

func (h *PreferencesHandler) ClearAvatar(w http.ResponseWriter, r *http.Request) {
	if err := h.preferences.ClearAvatar(mux.Vars(r)["id"]); err != nil {
		respondPreferencesError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

func respondPreferencesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, preferences.ErrProfileIDRequired),
		errors.Is(err, preferences.ErrQueryRequired),
		errors.Is(err, preferences.ErrAvatarURLRequired):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
