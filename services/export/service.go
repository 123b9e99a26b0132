package export

import (
	"errors"
	"fmt"
	"time"

	"simplstream/services/preferences"
	"simplstream/services/profiles"
	"simplstream/services/ratings"
	"simplstream/services/watchlist"
)

var ErrProfileIDRequired = errors.New("profile id is required")

// Service assembles and restores per-profile bundles from the stores.
type Service struct {
	profiles    *profiles.Service
	watchlist   *watchlist.Service
	ratings     *ratings.Service
	preferences *preferences.Service
}

// NewService creates an export service over the given stores.
func NewService(p *profiles.Service, w *watchlist.Service, r *ratings.Service, prefs *preferences.Service) *Service {
	return &Service{
		profiles:    p,
		watchlist:   w,
		ratings:     r,
		preferences: prefs,
	}
}

// Export collects the profile's data and encodes it as a bundle.
func (s *Service) Export(profileID string) ([]byte, error) {
	profile, err := s.profiles.Get(profileID)
	if err != nil {
		return nil, err
	}

	watchlistItems, err := s.watchlist.List(profileID)
	if err != nil {
		return nil, err
	}
	history, err := s.ratings.History(profileID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.preferences.Get(profileID)
	if err != nil {
		return nil, err
	}

	// Credentials stay on the device. The envelope obfuscates, it does
	// not encrypt, so the bundle must not carry the PIN hash or the
	// recovery word.
	profile.PinHash = ""
	profile.SecurityWord = ""

	return Encode(Bundle{
		ExportedAt:  time.Now().UTC(),
		Profile:     profile,
		Watchlist:   watchlistItems,
		History:     history,
		Preferences: prefs,
	})
}

// Import restores a bundle into an existing profile. The target profile
// keeps its identity and credentials; only watchlist, history and
// preferences are replaced.
func (s *Service) Import(profileID string, data []byte) error {
	if !s.profiles.Exists(profileID) {
		return profiles.ErrProfileNotFound
	}

	bundle, err := Decode(data)
	if err != nil {
		return err
	}

	if err := s.watchlist.Restore(profileID, bundle.Watchlist); err != nil {
		return fmt.Errorf("restore watchlist: %w", err)
	}
	if err := s.ratings.Restore(profileID, bundle.History); err != nil {
		return fmt.Errorf("restore history: %w", err)
	}
	if err := s.preferences.Restore(profileID, bundle.Preferences); err != nil {
		return fmt.Errorf("restore preferences: %w", err)
	}
	return nil
}
