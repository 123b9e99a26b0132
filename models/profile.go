package models

import "time"

// Profile represents a viewer profile with optional PIN protection.
type Profile struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	AvatarColor   string            `json:"avatarColor"`
	PinHash       string            `json:"pinHash,omitempty"`
	SecurityWord  string            `json:"securityWord,omitempty"`
	FirstLogin    bool              `json:"firstLogin"`
	SeasonalShown map[string]string `json:"seasonalShown,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ProfileView is the API representation of a profile. Credential material
// never leaves the server; clients only learn whether a PIN is set.
type ProfileView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AvatarColor string    `json:"avatarColor"`
	HasPin      bool      `json:"hasPin"`
	FirstLogin  bool      `json:"firstLogin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// View converts a profile to its API representation.
func (p Profile) View() ProfileView {
	return ProfileView{
		ID:          p.ID,
		Name:        p.Name,
		AvatarColor: p.AvatarColor,
		HasPin:      p.PinHash != "",
		FirstLogin:  p.FirstLogin,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// AvatarColors is the palette offered to new profiles.
var AvatarColors = []string{
	"#3B82F6",
	"#EF4444",
	"#10B981",
	"#F59E0B",
	"#8B5CF6",
	"#EC4899",
	"#14B8A6",
	"#F97316",
}
