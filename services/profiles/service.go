package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"simplstream/models"
)

const storeFile = "profiles.json"

var (
	ErrStorageDirRequired   = errors.New("storage directory is required")
	ErrProfileIDRequired    = errors.New("profile id is required")
	ErrNameRequired         = errors.New("profile name is required")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrInvalidPin           = errors.New("pin must be exactly 4 digits")
	ErrPinMismatch          = errors.New("pin does not match")
	ErrSecurityWordRequired = errors.New("security word is required")
	ErrSecurityWordMismatch = errors.New("security word does not match")
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Service manages viewer profiles backed by a JSON file.
type Service struct {
	mu       sync.RWMutex
	path     string
	profiles map[string]models.Profile
}

// NewService creates a profile service persisting under storageDir.
func NewService(storageDir string) (*Service, error) {
	dir := strings.TrimSpace(storageDir)
	if dir == "" {
		return nil, ErrStorageDirRequired
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &Service{
		path:     filepath.Join(dir, storeFile),
		profiles: make(map[string]models.Profile),
	}
	s.load()
	return s, nil
}

// load reads the store from disk. A missing or corrupt file leaves the
// service with an empty store so the application can still start.
func (s *Service) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("profiles: failed to read store: %v", err)
		}
		return
	}

	var stored []models.Profile
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("profiles: store is corrupt, starting empty: %v", err)
		return
	}

	for _, p := range stored {
		s.profiles[p.ID] = p
	}
}

func (s *Service) saveLocked() error {
	list := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace profiles: %w", err)
	}
	return nil
}

// GenerateID returns a new unique profile identifier.
func (s *Service) GenerateID() string {
	return uuid.NewString()
}

// cloneShown copies the seasonal tracking map so returned profiles never
// alias store-internal state that MarkSeasonalShown mutates.
func cloneShown(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// List returns all profiles ordered by creation time.
func (s *Service) List() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		p.SeasonalShown = cloneShown(p.SeasonalShown)
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Get returns a single profile by id.
func (s *Service) Get(id string) (models.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Profile{}, ErrProfileIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, ErrProfileNotFound
	}
	p.SeasonalShown = cloneShown(p.SeasonalShown)
	return p, nil
}

// Exists reports whether a profile with the given id exists.
func (s *Service) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.profiles[strings.TrimSpace(id)]
	return ok
}

// Create adds a new profile. A PIN, when provided, must be exactly 4
// digits and requires a security word for recovery.
func (s *Service) Create(name, avatarColor, pin, securityWord string) (models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Profile{}, ErrNameRequired
	}

	pin = strings.TrimSpace(pin)
	securityWord = strings.TrimSpace(securityWord)

	now := time.Now().UTC()
	profile := models.Profile{
		ID:          uuid.NewString(),
		Name:        name,
		AvatarColor: strings.TrimSpace(avatarColor),
		FirstLogin:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if profile.AvatarColor == "" {
		profile.AvatarColor = models.AvatarColors[0]
	}

	if pin != "" {
		if !pinPattern.MatchString(pin) {
			return models.Profile{}, ErrInvalidPin
		}
		if securityWord == "" {
			return models.Profile{}, ErrSecurityWordRequired
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return models.Profile{}, fmt.Errorf("hash pin: %w", err)
		}
		profile.PinHash = string(hash)
		profile.SecurityWord = strings.ToLower(securityWord)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.ID] = profile
	if err := s.saveLocked(); err != nil {
		delete(s.profiles, profile.ID)
		return models.Profile{}, err
	}
	return profile, nil
}

// Save upserts a full profile record by id, creating it when absent.
// An empty id gets a generated one.
func (s *Service) Save(profile models.Profile) (models.Profile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return models.Profile{}, ErrNameRequired
	}

	now := time.Now().UTC()
	if strings.TrimSpace(profile.ID) == "" {
		profile.ID = uuid.NewString()
		profile.CreatedAt = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	profile.SeasonalShown = cloneShown(profile.SeasonalShown)

	s.profiles[profile.ID] = profile
	if err := s.saveLocked(); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// Update changes a profile's name and avatar color.
func (s *Service) Update(id, name, avatarColor string) (models.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Profile{}, ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, ErrProfileNotFound
	}

	if name = strings.TrimSpace(name); name != "" {
		profile.Name = name
	}
	if avatarColor = strings.TrimSpace(avatarColor); avatarColor != "" {
		profile.AvatarColor = avatarColor
	}
	profile.UpdatedAt = time.Now().UTC()

	s.profiles[id] = profile
	if err := s.saveLocked(); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// Delete removes a profile.
func (s *Service) Delete(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return ErrProfileNotFound
	}
	delete(s.profiles, id)
	return s.saveLocked()
}

// SetPin sets or replaces a profile's PIN together with its recovery word.
func (s *Service) SetPin(id, pin, securityWord string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrProfileIDRequired
	}
	pin = strings.TrimSpace(pin)
	if !pinPattern.MatchString(pin) {
		return ErrInvalidPin
	}
	securityWord = strings.TrimSpace(securityWord)
	if securityWord == "" {
		return ErrSecurityWordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}

	profile.PinHash = string(hash)
	profile.SecurityWord = strings.ToLower(securityWord)
	profile.UpdatedAt = time.Now().UTC()
	s.profiles[id] = profile
	return s.saveLocked()
}

// ClearPin removes a profile's PIN and security word.
func (s *Service) ClearPin(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}

	profile.PinHash = ""
	profile.SecurityWord = ""
	profile.UpdatedAt = time.Now().UTC()
	s.profiles[id] = profile
	return s.saveLocked()
}

// VerifyPin checks a PIN against the stored hash. Profiles without a PIN
// accept any attempt.
func (s *Service) VerifyPin(id, pin string) error {
	s.mu.RLock()
	profile, ok := s.profiles[strings.TrimSpace(id)]
	s.mu.RUnlock()

	if !ok {
		return ErrProfileNotFound
	}
	if profile.PinHash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PinHash), []byte(strings.TrimSpace(pin))); err != nil {
		return ErrPinMismatch
	}
	return nil
}

// VerifySecurityWord checks the recovery word used to reset a forgotten PIN.
// Comparison is case insensitive.
func (s *Service) VerifySecurityWord(id, word string) error {
	s.mu.RLock()
	profile, ok := s.profiles[strings.TrimSpace(id)]
	s.mu.RUnlock()

	if !ok {
		return ErrProfileNotFound
	}
	if profile.SecurityWord == "" {
		return ErrSecurityWordMismatch
	}
	if profile.SecurityWord != strings.ToLower(strings.TrimSpace(word)) {
		return ErrSecurityWordMismatch
	}
	return nil
}

// SetFirstLogin updates the profile's first-login flag.
func (s *Service) SetFirstLogin(id string, firstLogin bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	if profile.FirstLogin == firstLogin {
		return nil
	}

	profile.FirstLogin = firstLogin
	profile.UpdatedAt = time.Now().UTC()
	s.profiles[id] = profile
	return s.saveLocked()
}

// MarkSeasonalShown records that a seasonal campaign was presented to the
// profile on the given day bucket, so it is shown at most once per day.
func (s *Service) MarkSeasonalShown(id, campaignKey, dayBucket string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrProfileIDRequired
	}
	campaignKey = strings.TrimSpace(campaignKey)
	if campaignKey == "" {
		return errors.New("campaign key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	if profile.SeasonalShown[campaignKey] == dayBucket {
		return nil
	}

	// Copy on write: previously returned profiles may still hold the old map.
	shown := cloneShown(profile.SeasonalShown)
	if shown == nil {
		shown = make(map[string]string, 1)
	}
	shown[campaignKey] = dayBucket
	profile.SeasonalShown = shown
	s.profiles[id] = profile
	return s.saveLocked()
}

// SeasonalShownOn reports whether the campaign was already presented to
// the profile on the given day bucket.
func (s *Service) SeasonalShownOn(id, campaignKey, dayBucket string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[strings.TrimSpace(id)]
	if !ok || profile.SeasonalShown == nil {
		return false
	}
	return profile.SeasonalShown[campaignKey] == dayBucket
}
