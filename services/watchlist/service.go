package watchlist

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

	"github.com/google/uuid"

	"simplstream/models"
)

const storeFile = "watchlist.json"

var (
	ErrStorageDirRequired = errors.New("storage directory is required")
	ErrProfileIDRequired  = errors.New("profile id is required")
	ErrTMDBIDRequired     = errors.New("tmdb id is required")
	ErrMediaTypeRequired  = errors.New("media type is required")
)

// Service manages per-profile watchlists backed by a JSON file. Items are
// kept in insertion order.
type Service struct {
	mu    sync.RWMutex
	path  string
	items map[string][]models.WatchlistItem
}

// NewService creates a watchlist service persisting under storageDir.
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
		items: make(map[string][]models.WatchlistItem),
	}
	s.load()
	return s, nil
}

func (s *Service) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("watchlist: failed to read store: %v", err)
		}
		return
	}

	var stored map[string][]models.WatchlistItem
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("watchlist: store is corrupt, starting empty: %v", err)
		return
	}
	if stored != nil {
		s.items = stored
	}
}

func (s *Service) saveLocked() error {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal watchlist: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write watchlist: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace watchlist: %w", err)
	}
	return nil
}

// Add appends a title to the profile's watchlist. Adding a title that is
// already present is a no-op and returns the existing item.
func (s *Service) Add(profileID string, tmdbID int64, mediaType, title, posterPath string) (models.WatchlistItem, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return models.WatchlistItem{}, ErrProfileIDRequired
	}
	if tmdbID <= 0 {
		return models.WatchlistItem{}, ErrTMDBIDRequired
	}
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" {
		return models.WatchlistItem{}, ErrMediaTypeRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Presence is keyed by tmdb id alone, matching the lookup in Contains.
	for _, item := range s.items[profileID] {
		if item.TMDBID == tmdbID {
			return item, nil
		}
	}

	item := models.WatchlistItem{
		ID:         uuid.NewString(),
		ProfileID:  profileID,
		TMDBID:     tmdbID,
		MediaType:  mediaType,
		Title:      strings.TrimSpace(title),
		PosterPath: strings.TrimSpace(posterPath),
		CreatedAt:  time.Now().UTC(),
	}
	s.items[profileID] = append(s.items[profileID], item)

	if err := s.saveLocked(); err != nil {
		return models.WatchlistItem{}, err
	}
	return item, nil
}

// Remove deletes a title from the profile's watchlist. Removing a title
// that is not present is a no-op.
func (s *Service) Remove(profileID string, tmdbID int64) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}
	if tmdbID <= 0 {
		return ErrTMDBIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.items[profileID]
	kept := list[:0]
	for _, item := range list {
		if item.TMDBID != tmdbID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	s.items[profileID] = kept
	return s.saveLocked()
}

// Contains reports whether the profile's watchlist holds the title. The
// check is by tmdb id only; a movie and a show sharing an id are treated
// as the same title.
func (s *Service) Contains(profileID string, tmdbID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items[strings.TrimSpace(profileID)] {
		if item.TMDBID == tmdbID {
			return true
		}
	}
	return false
}

// List returns the profile's watchlist in insertion order.
func (s *Service) List(profileID string) ([]models.WatchlistItem, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, ErrProfileIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.items[profileID]
	out := make([]models.WatchlistItem, len(list))
	copy(out, list)
	return out, nil
}

// Clear removes the profile's entire watchlist.
func (s *Service) Clear(profileID string) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[profileID]; !ok {
		return nil
	}
	delete(s.items, profileID)
	return s.saveLocked()
}

// Restore replaces the profile's watchlist with the given items. Used by
// bundle import.
func (s *Service) Restore(profileID string, items []models.WatchlistItem) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restored := make([]models.WatchlistItem, 0, len(items))
	for _, item := range items {
		item.ProfileID = profileID
		restored = append(restored, item)
	}
	s.items[profileID] = restored
	return s.saveLocked()
}
