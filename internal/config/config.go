// Package config loads tagstand configuration from TOML files. The
// processors re-read configuration for every processed item, so edits
// take effect on the next track without a restart; Provider is the
// seam that makes this explicit.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "tagstand"

// Config is one configuration snapshot.
type Config struct {
	FeaturedArtists FeaturedArtistsConfig `koanf:"featured_artists"`
	Asciifier       AsciifierConfig       `koanf:"asciifier"`
	Guardrails      GuardrailsConfig      `koanf:"guardrails"`
	Rename          RenameConfig          `koanf:"rename"`
}

// FeaturedArtistsConfig controls the featured-artists processors.
type FeaturedArtistsConfig struct {
	// AddFeaturedArtistsTag writes a multi-valued FEATURED_ARTISTS tag.
	AddFeaturedArtistsTag bool `koanf:"add_featured_artists_tag"`
	// Whitelist holds full artist credits to skip, separated by
	// newlines, commas, or semicolons.
	Whitelist string `koanf:"whitelist"`
}

// AsciifierConfig controls ASCII transliteration.
type AsciifierConfig struct {
	Enabled      bool     `koanf:"enabled"`
	Tags         []string `koanf:"tags"`          // tag names to transliterate
	DisabledMaps []string `koanf:"disabled_maps"` // replacement categories to skip
}

// GuardrailsConfig controls filename collision handling.
type GuardrailsConfig struct {
	Enabled bool `koanf:"enabled"`
	// FatalOnCollision rolls the file back to its original path and
	// reports an error instead of re-running naming.
	FatalOnCollision bool `koanf:"fatal_on_collision"`
	// JournalPath overrides the default rename journal location.
	JournalPath string `koanf:"journal_path"`
}

// RenameConfig holds the path templates used when renaming files.
type RenameConfig struct {
	Folder   string `koanf:"folder"`
	Filename string `koanf:"filename"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Asciifier: AsciifierConfig{
			Tags: []string{"artist", "title", "album", "albumartist"},
		},
		Rename: RenameConfig{
			Folder:   "{albumartist}/{year} • {album}",
			Filename: "{artist} • {album} • {tracknumber} · {title}",
		},
	}
}

// Load reads configuration files in priority order (last wins) on top
// of the defaults. Missing files are skipped; a file that fails to
// parse is an error.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in journal_path
	if cfg.Guardrails.JournalPath != "" {
		cfg.Guardrails.JournalPath = expandPath(cfg.Guardrails.JournalPath)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/tagstand/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
