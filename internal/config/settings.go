package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadsPath          string  `toml:"downloads_path"`
	MaxConcurrentDownloads int     `toml:"max_concurrent_downloads"`
	StaggerDelay           float64 `toml:"stagger_delay"` // seconds between track starts
	DownloadMaxRetries     int     `toml:"download_max_retries"`
	DownloadRetryCooldown  float64 `toml:"download_retry_cooldown"`
	DownloadRetryExponent  float64 `toml:"download_retry_exponent"`
	ChunkSize              int64   `toml:"chunk_size"` // bytes per ranged request
	UserAgent              string  `toml:"user_agent"`

	// File naming
	FileNameFormat string `toml:"file_name_format"`

	// Tag settings
	ModifyTags   bool `toml:"modify_tags"`
	EmbedArtwork bool `toml:"embed_artwork"`

	// Cover art settings
	ArtworkMaxSize int `toml:"artwork_max_size"`

	// Playlist settings
	CreatePlaylist bool   `toml:"create_playlist"`
	PlaylistFormat string `toml:"playlist_format"` // m3u, pls
	M3UExtended    bool   `toml:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DownloadsPath:          filepath.Join(homeDir, "Music", "Traktrain"),
		MaxConcurrentDownloads: 3,
		StaggerDelay:           1.5,
		DownloadMaxRetries:     5,
		DownloadRetryCooldown:  0.2,
		DownloadRetryExponent:  4.0,
		ChunkSize:              1 << 20,
		UserAgent:              "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",

		FileNameFormat: "{artist} - {title}.mp3",

		ModifyTags:   true,
		EmbedArtwork: true,

		ArtworkMaxSize: 1000,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// Load reads settings from a TOML file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ToTrackConfig converts settings to the model's track naming config.
func (s *Settings) ToTrackConfig() *model.TrackConfig {
	return &model.TrackConfig{
		FileNameFormat: s.FileNameFormat,
	}
}
