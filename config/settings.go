package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server   ServerSettings   `json:"server"`
	Metadata MetadataSettings `json:"metadata"`
	Storage  StorageSettings  `json:"storage"`
	Log      LogSettings      `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type MetadataSettings struct {
	TMDBAPIKey string `json:"tmdbApiKey"`
	Language   string `json:"language"`
}

type StorageSettings struct {
	Directory string `json:"directory"`
}

// LogSettings configures rotating file logging.
type LogSettings struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"` // megabytes
	MaxBackups int    `json:"maxBackups"`
	MaxAge     int    `json:"maxAge"` // days
	Compress   bool   `json:"compress"`
}

// Manager loads and persists settings for the application.
type Manager struct {
	path string
}

// NewManager creates a settings manager for the given file path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Defaults returns the settings used when no configuration file exists yet.
func Defaults() Settings {
	return Settings{
		Server: ServerSettings{
			Host: "0.0.0.0",
			Port: 7455,
		},
		Metadata: MetadataSettings{
			Language: "en-US",
		},
		Storage: StorageSettings{
			Directory: "data",
		},
		Log: LogSettings{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
		},
	}
}

// Load reads settings from disk, creating the file with defaults if missing.
// Environment variables (optionally sourced from a .env file) override file values.
func (m *Manager) Load() (Settings, error) {
	_ = godotenv.Load()

	settings := Defaults()

	data, err := os.ReadFile(m.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := m.Save(settings); err != nil {
			return Settings{}, err
		}
	case err != nil:
		return Settings{}, err
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return Settings{}, err
		}
	}

	applyEnvOverrides(&settings)

	if settings.Server.Port <= 0 {
		settings.Server.Port = Defaults().Server.Port
	}
	if strings.TrimSpace(settings.Storage.Directory) == "" {
		settings.Storage.Directory = Defaults().Storage.Directory
	}

	return settings, nil
}

// Save writes the settings to disk, creating parent directories as needed.
func (m *Manager) Save(settings Settings) error {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, m.path)
}

func applyEnvOverrides(settings *Settings) {
	if v := strings.TrimSpace(os.Getenv("TMDB_API_KEY")); v != "" {
		settings.Metadata.TMDBAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("SIMPLSTREAM_LANGUAGE")); v != "" {
		settings.Metadata.Language = v
	}
	if v := strings.TrimSpace(os.Getenv("SIMPLSTREAM_DATA_DIR")); v != "" {
		settings.Storage.Directory = v
	}
	if v := strings.TrimSpace(os.Getenv("SIMPLSTREAM_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			settings.Server.Port = port
		}
	}
}
