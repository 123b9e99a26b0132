package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"simplstream/models"
)

const (
	storeFile = "preferences.json"

	searchHistoryLimit = 50
)

var (
	ErrStorageDirRequired = errors.New("storage directory is required")
	ErrProfileIDRequired  = errors.New("profile id is required")
	ErrQueryRequired      = errors.New("search query is required")
	ErrAvatarURLRequired  = errors.New("avatar url is required")
)

// Service manages per-profile preferences backed by a JSON file.
type Service struct {
	mu    sync.RWMutex
	path  string
	prefs map[string]models.ProfilePreferences
}

// NewService creates a preferences service persisting under storageDir.
func NewService(storageDir string) (*Service, error) {
	dir := strings.TrimSpace(storageDir)
	if dir == "" {
		return nil, ErrStorageDirRequired
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &Service{
		path:  filepath.Join(dir, storeFile),
		prefs: make(map[string]models.ProfilePreferences),
	}
	s.load()
	return s, nil
}

func (s *Service) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("preferences: failed to read store: %v", err)
		}
		return
	}

	var stored map[string]models.ProfilePreferences
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("preferences: store is corrupt, starting empty: %v", err)
		return
	}
	if stored != nil {
		s.prefs = stored
	}
}

func (s *Service) saveLocked() error {
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}

// getLocked returns the profile's preferences, defaulting search history
// collection to enabled for profiles never seen before.
func (s *Service) getLocked(profileID string) models.ProfilePreferences {
	if prefs, ok := s.prefs[profileID]; ok {
		return prefs
	}
	return models.ProfilePreferences{SearchHistoryEnabled: true}
}

// Get returns the profile's preferences.
func (s *Service) Get(profileID string) (models.ProfilePreferences, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return models.ProfilePreferences{}, ErrProfileIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(profileID), nil
}

// SearchHistoryEnabled reports whether search collection is on for the profile.
func (s *Service) SearchHistoryEnabled(profileID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(strings.TrimSpace(profileID)).SearchHistoryEnabled
}

// SetSearchHistoryEnabled toggles search collection. Disabling it also
// erases the recorded log.
func (s *Service) SetSearchHistoryEnabled(profileID string, enabled bool) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.getLocked(profileID)
	prefs.SearchHistoryEnabled = enabled
	if !enabled {
		prefs.SearchHistory = nil
	}
	prefs.UpdatedAt = time.Now().UTC()
	s.prefs[profileID] = prefs
	return s.saveLocked()
}

// RecordSearch appends a query to the profile's search log. Recording is
// a no-op when collection is disabled. The log keeps the most recent
// entries up to a fixed cap.
func (s *Service) RecordSearch(profileID, query string) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrQueryRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.getLocked(profileID)
	if !prefs.SearchHistoryEnabled {
		return nil
	}

	prefs.SearchHistory = append(prefs.SearchHistory, models.SearchEntry{
		Query:     query,
		Timestamp: time.Now().UTC(),
	})
	if len(prefs.SearchHistory) > searchHistoryLimit {
		prefs.SearchHistory = prefs.SearchHistory[len(prefs.SearchHistory)-searchHistoryLimit:]
	}
	prefs.UpdatedAt = time.Now().UTC()
	s.prefs[profileID] = prefs
	return s.saveLocked()
}

// SearchHistory returns the profile's recorded searches, oldest first.
func (s *Service) SearchHistory(profileID string) ([]models.SearchEntry, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, ErrProfileIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.getLocked(profileID).SearchHistory
	out := make([]models.SearchEntry, len(history))
	copy(out, history)
	return out, nil
}

// ClearSearchHistory erases the profile's search log without changing the
// collection toggle.
func (s *Service) ClearSearchHistory(profileID string) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.getLocked(profileID)
	if len(prefs.SearchHistory) == 0 {
		return nil
	}
	prefs.SearchHistory = nil
	prefs.UpdatedAt = time.Now().UTC()
	s.prefs[profileID] = prefs
	return s.saveLocked()
}

// SetAvatar stores a custom avatar image. Zoom is clamped to at least 1
// and crop offsets to the 0..100 percent range.
func (s *Service) SetAvatar(profileID string, avatar models.CustomAvatar) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}
	avatar.URL = strings.TrimSpace(avatar.URL)
	if avatar.URL == "" {
		return ErrAvatarURLRequired
	}

	if avatar.Zoom < 1 {
		avatar.Zoom = 1
	}
	avatar.Position.X = clampPercent(avatar.Position.X)
	avatar.Position.Y = clampPercent(avatar.Position.Y)

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.getLocked(profileID)
	prefs.Avatar = &avatar
	prefs.UpdatedAt = time.Now().UTC()
	s.prefs[profileID] = prefs
	return s.saveLocked()
}

// ClearAvatar removes the profile's custom avatar.
func (s *Service) ClearAvatar(profileID string) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.getLocked(profileID)
	if prefs.Avatar == nil {
		return nil
	}
	prefs.Avatar = nil
	prefs.UpdatedAt = time.Now().UTC()
	s.prefs[profileID] = prefs
	return s.saveLocked()
}

// Clear removes all of the profile's preferences.
func (s *Service) Clear(profileID string) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prefs[profileID]; !ok {
		return nil
	}
	delete(s.prefs, profileID)
	return s.saveLocked()
}

// Restore replaces the profile's preferences. Used by bundle import.
func (s *Service) Restore(profileID string, prefs models.ProfilePreferences) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[profileID] = prefs
	return s.saveLocked()
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
