package ratings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"simplstream/models"
)

const (
	storeFile = "history.json"

	// Continue watching caps out at ten rows in the UI.
	continueWatchingLimit = 10
)

var (
	ErrStorageDirRequired = errors.New("storage directory is required")
	ErrProfileIDRequired  = errors.New("profile id is required")
	ErrTMDBIDRequired     = errors.New("tmdb id is required")
	ErrMediaTypeRequired  = errors.New("media type is required")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrEntryNotFound      = errors.New("history entry not found")
)

// Service manages per-profile viewing history and ratings backed by a
// JSON file. Entries are keyed by media type and tmdb id so a movie and a
// show sharing an id rate independently.
type Service struct {
	mu      sync.RWMutex
	path    string
	entries map[string]map[string]models.HistoryEntry
}

func entryKey(mediaType string, tmdbID int64) string {
	return fmt.Sprintf("%s:%d", mediaType, tmdbID)
}

// NewService creates a ratings service persisting under storageDir.
func NewService(storageDir string) (*Service, error) {
	dir := strings.TrimSpace(storageDir)
	if dir == "" {
		return nil, ErrStorageDirRequired
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &Service{
		path:    filepath.Join(dir, storeFile),
		entries: make(map[string]map[string]models.HistoryEntry),
	}
	s.load()
	return s, nil
}

func (s *Service) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("ratings: failed to read store: %v", err)
		}
		return
	}

	var stored map[string]map[string]models.HistoryEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("ratings: store is corrupt, starting empty: %v", err)
		return
	}
	if stored != nil {
		s.entries = stored
	}
}

func (s *Service) saveLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

// Save upserts a rating for a title. Re-rating a title updates the
// existing entry in place, keeping its id and creation time.
func (s *Service) Save(profileID string, tmdbID int64, mediaType string, rating int, title, posterPath string, genres []models.Genre) (models.HistoryEntry, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return models.HistoryEntry{}, ErrProfileIDRequired
	}
	if tmdbID <= 0 {
		return models.HistoryEntry{}, ErrTMDBIDRequired
	}
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" {
		return models.HistoryEntry{}, ErrMediaTypeRequired
	}
	if rating < 1 || rating > 5 {
		return models.HistoryEntry{}, ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := entryKey(mediaType, tmdbID)

	profileEntries := s.entries[profileID]
	if profileEntries == nil {
		profileEntries = make(map[string]models.HistoryEntry)
		s.entries[profileID] = profileEntries
	}

	entry, ok := profileEntries[key]
	if !ok {
		entry = models.HistoryEntry{
			ID:        uuid.NewString(),
			ProfileID: profileID,
			TMDBID:    tmdbID,
			MediaType: mediaType,
			CreatedAt: now,
		}
	}

	entry.Rating = rating
	entry.Title = strings.TrimSpace(title)
	entry.PosterPath = strings.TrimSpace(posterPath)
	entry.Genres = genres
	entry.UpdatedAt = now
	profileEntries[key] = entry

	if err := s.saveLocked(); err != nil {
		return models.HistoryEntry{}, err
	}
	return entry, nil
}

// Get returns the profile's entry for a title.
func (s *Service) Get(profileID string, tmdbID int64, mediaType string) (models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[strings.TrimSpace(profileID)][entryKey(strings.TrimSpace(mediaType), tmdbID)]
	if !ok {
		return models.HistoryEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

// IsWatched reports whether the profile has rated the title.
func (s *Service) IsWatched(profileID string, tmdbID int64, mediaType string) bool {
	_, err := s.Get(profileID, tmdbID, mediaType)
	return err == nil
}

// History returns all of the profile's entries, most recently updated first.
func (s *Service) History(profileID string) ([]models.HistoryEntry, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, ErrProfileIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.HistoryEntry, 0, len(s.entries[profileID]))
	for _, entry := range s.entries[profileID] {
		list = append(list, entry)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UpdatedAt.After(list[j].UpdatedAt)
	})
	return list, nil
}

// ContinueWatching returns the profile's most recently updated titles,
// one entry per title, capped at ten.
func (s *Service) ContinueWatching(profileID string) ([]models.HistoryEntry, error) {
	history, err := s.History(profileID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(history))
	out := make([]models.HistoryEntry, 0, continueWatchingLimit)
	for _, entry := range history {
		key := entryKey(entry.MediaType, entry.TMDBID)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, entry)
		if len(out) == continueWatchingLimit {
			break
		}
	}
	return out, nil
}

// Clear removes all of the profile's history.
func (s *Service) Clear(profileID string) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[profileID]; !ok {
		return nil
	}
	delete(s.entries, profileID)
	return s.saveLocked()
}

// Restore replaces the profile's history with the given entries. Used by
// bundle import.
func (s *Service) Restore(profileID string, entries []models.HistoryEntry) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restored := make(map[string]models.HistoryEntry, len(entries))
	for _, entry := range entries {
		entry.ProfileID = profileID
		restored[entryKey(entry.MediaType, entry.TMDBID)] = entry
	}
	s.entries[profileID] = restored
	return s.saveLocked()
}
