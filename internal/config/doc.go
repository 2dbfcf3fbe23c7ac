// Package config handles application settings.
//
// Settings are stored as a TOML file. Load falls back to defaults when
// the file does not exist, so a fresh install works without any setup.
package config
