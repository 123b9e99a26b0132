package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"simplstream/models"
	"simplstream/services/profiles"
)

type profilesService interface {
	List() []models.Profile
	Get(id string) (models.Profile, error)
	Create(name, avatarColor, pin, securityWord string) (models.Profile, error)
	Update(id, name, avatarColor string) (models.Profile, error)
	Delete(id string) error
	SetPin(id, pin, securityWord string) error
	ClearPin(id string) error
	VerifyPin(id, pin string) error
	VerifySecurityWord(id, word string) error
	SetFirstLogin(id string, firstLogin bool) error
}

var _ profilesService = (*profiles.Service)(nil)

type profileDataRemover interface {
	ClearWatchlist(profileID string) error
	ClearHistory(profileID string) error
	ClearSearchHistory(profileID string) error
	ClearPreferences(profileID string) error
}

// ProfilesHandler serves profile CRUD and PIN management.
type ProfilesHandler struct {
	profiles profilesService
	remover  profileDataRemover
}

// NewProfilesHandler creates the profiles handler.
func NewProfilesHandler(svc profilesService, remover profileDataRemover) *ProfilesHandler {
	return &ProfilesHandler{profiles: svc, remover: remover}
}

func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.profiles.List()
	views := make([]models.ProfileView, 0, len(list))
	for _, p := range list {
		views = append(views, p.View())
	}
	respondJSON(w, http.StatusOK, map[string]any{"profiles": views})
}

func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(mux.Vars(r)["id"])
	if err != nil {
		respondProfileError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile.View())
}

func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name         string `json:"name"`
		AvatarColor  string `json:"avatarColor"`
		Pin          string `json:"pin"`
		SecurityWord string `json:"securityWord"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	profile, err := h.profiles.Create(body.Name, body.AvatarColor, body.Pin, body.SecurityWord)
	if err != nil {
		respondProfileError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, profile.View())
}

func (h *ProfilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		AvatarColor string `json:"avatarColor"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	profile, err := h.profiles.Update(mux.Vars(r)["id"], body.Name, body.AvatarColor)
	if err != nil {
		respondProfileError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile.View())
}

func (h *ProfilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.profiles.Delete(id); err != nil {
		respondProfileError(w, err)
		return
	}

	// Deleting a profile takes its data with it.
	if err := h.clearProfileData(id, true, true, true); err != nil {
		log.Printf("profiles: failed to clear data for deleted profile %s: %v", id, err)
	}
	if err := h.remover.ClearPreferences(id); err != nil {
		log.Printf("profiles: failed to clear preferences for deleted profile %s: %v", id, err)
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *ProfilesHandler) SetPin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Pin          string `json:"pin"`
		SecurityWord string `json:"securityWord"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	if err := h.profiles.SetPin(mux.Vars(r)["id"], body.Pin, body.SecurityWord); err != nil {
		respondProfileError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"pinSet": true})
}

func (h *ProfilesHandler) VerifyPin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Pin string `json:"pin"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	err := h.profiles.VerifyPin(mux.Vars(r)["id"], body.Pin)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]bool{"valid": true})
	case errors.Is(err, profiles.ErrPinMismatch):
		respondJSON(w, http.StatusOK, map[string]bool{"valid": false})
	default:
		respondProfileError(w, err)
	}
}

func (h *ProfilesHandler) ClearPin(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.ClearPin(mux.Vars(r)["id"]); err != nil {
		respondProfileError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"pinCleared": true})
}

// RecoverPin resets a forgotten PIN after the security word checks out.
func (h *ProfilesHandler) RecoverPin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SecurityWord string `json:"securityWord"`
		NewPin       string `json:"newPin"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.profiles.VerifySecurityWord(id, body.SecurityWord); err != nil {
		if errors.Is(err, profiles.ErrSecurityWordMismatch) {
			respondError(w, http.StatusForbidden, "security word does not match")
			return
		}
		respondProfileError(w, err)
		return
	}
	if err := h.profiles.SetPin(id, body.NewPin, body.SecurityWord); err != nil {
		respondProfileError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"pinSet": true})
}

// CompleteWelcome clears the first-login flag after the intro screen.
func (h *ProfilesHandler) CompleteWelcome(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.SetFirstLogin(mux.Vars(r)["id"], false); err != nil {
		respondProfileError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"firstLogin": false})
}

// RemoveData selectively erases categories of the profile's data while
// keeping the profile itself. The security flag clears the PIN and
// security word on the profile record.
func (h *ProfilesHandler) RemoveData(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Watchlist     bool `json:"watchlist"`
		History       bool `json:"history"`
		Security      bool `json:"security"`
		SearchHistory bool `json:"searchHistory"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	id := mux.Vars(r)["id"]
	if _, err := h.profiles.Get(id); err != nil {
		respondProfileError(w, err)
		return
	}

	if err := h.clearProfileData(id, body.Watchlist, body.History, body.SearchHistory); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to remove profile data")
		return
	}
	if body.Security {
		if err := h.profiles.ClearPin(id); err != nil {
			respondProfileError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

// clearProfileData fans out removal across the stores. Removing history
// also clears the search log.
func (h *ProfilesHandler) clearProfileData(id string, watchlist, history, searchHistory bool) error {
	if watchlist {
		if err := h.remover.ClearWatchlist(id); err != nil {
			return err
		}
	}
	if history {
		if err := h.remover.ClearHistory(id); err != nil {
			return err
		}
		searchHistory = true
	}
	if searchHistory {
		if err := h.remover.ClearSearchHistory(id); err != nil {
			return err
		}
	}
	return nil
}

func respondProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profiles.ErrProfileNotFound):
		respondError(w, http.StatusNotFound, "profile not found")
	case errors.Is(err, profiles.ErrProfileIDRequired),
		errors.Is(err, profiles.ErrNameRequired),
		errors.Is(err, profiles.ErrInvalidPin),
		errors.Is(err, profiles.ErrSecurityWordRequired):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
