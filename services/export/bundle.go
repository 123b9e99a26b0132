package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"simplstream/models"
)

// Bundle is a portable snapshot of one profile's data.
type Bundle struct {
	Version     int                       `json:"version"`
	ExportedAt  time.Time                 `json:"exportedAt"`
	Profile     models.Profile            `json:"profile"`
	Watchlist   []models.WatchlistItem    `json:"watchlist"`
	History     []models.HistoryEntry     `json:"history"`
	Preferences models.ProfilePreferences `json:"preferences"`
}

const bundleVersion = 1

// magic identifies an obfuscated bundle file.
var magic = []byte("SSPB")

var (
	ErrNotABundle        = errors.New("data is not a profile bundle")
	ErrUnsupportedBundle = errors.New("unsupported bundle version")
)

// obfuscate applies a rotating XOR transform. It is its own inverse and
// only deters casual inspection of exported files. It is not encryption.
func obfuscate(data, key []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)] ^ byte(i)
	}
	return out
}

var bundleKey = []byte("simplstream-bundle")

// Encode serializes a bundle into the obfuscated wire format.
func Encode(bundle Bundle) ([]byte, error) {
	bundle.Version = bundleVersion

	payload, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}

	out := make([]byte, 0, len(magic)+1+len(payload))
	out = append(out, magic...)
	out = append(out, byte(bundleVersion))
	out = append(out, obfuscate(payload, bundleKey)...)
	return out, nil
}

// Decode parses an obfuscated bundle produced by Encode.
func Decode(data []byte) (Bundle, error) {
	if len(data) < len(magic)+1 || !bytes.Equal(data[:len(magic)], magic) {
		return Bundle{}, ErrNotABundle
	}
	if data[len(magic)] != bundleVersion {
		return Bundle{}, ErrUnsupportedBundle
	}

	payload := obfuscate(data[len(magic)+1:], bundleKey)

	var bundle Bundle
	if err := json.Unmarshal(payload, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	return bundle, nil
}
