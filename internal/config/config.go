// Package config loads moltcarousel configuration from TOML files and the
// environment.
//
// Configuration is optional: every field has a working default, and a
// missing config file is not an error. Lookup order for the file is an
// explicit --config path, then ./moltcarousel.toml, then
// $XDG_CONFIG_HOME/moltcarousel/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/busse/molt-in-the-mist/pkg/carousel"
	"github.com/busse/molt-in-the-mist/pkg/errors"
	"github.com/busse/molt-in-the-mist/pkg/pipeline"
)

const (
	appName         = "moltcarousel"
	defaultFileName = "moltcarousel.toml"
)

// Config is the full application configuration.
type Config struct {
	Data     DataConfig       `toml:"data"`
	Output   OutputConfig     `toml:"output"`
	Fonts    FontsConfig      `toml:"fonts"`
	Palette  carousel.Palette `toml:"palette"`
	Cache    CacheConfig      `toml:"cache"`
	Moltbook MoltbookConfig   `toml:"moltbook"`
}

// DataConfig locates the collector's JSON exports.
type DataConfig struct {
	Dir     string `toml:"dir"`
	SiteDir string `toml:"site_dir"`
}

// OutputConfig controls where artifacts are written.
type OutputConfig struct {
	// Base is the parent for timestamped run directories.
	Base string `toml:"base"`
}

// FontsConfig controls font resolution.
type FontsConfig struct {
	// Dirs are extra local directories searched for fonts.
	Dirs []string `toml:"dirs"`

	// URLs maps font names to download URLs.
	URLs map[string]string `toml:"urls"`
}

// CacheConfig selects the byte cache backend for downloaded fonts.
type CacheConfig struct {
	// Backend is "file", "redis", or "none". Empty means file.
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MoltbookConfig configures the posting client. The API key itself comes
// only from the MOLTBOOK_API_KEY environment variable, never from a file.
type MoltbookConfig struct {
	BaseURL string `toml:"base_url"`
	Submolt string `toml:"submolt"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:     pipeline.DefaultDataDir,
			SiteDir: pipeline.DefaultSiteDataDir,
		},
		Output: OutputConfig{
			Base: pipeline.DefaultOutputBase,
		},
		Palette: carousel.DefaultPalette(),
		Cache: CacheConfig{
			Backend: "file",
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Moltbook: MoltbookConfig{
			Submolt: "general",
		},
	}
}

// Load reads configuration, layering a TOML file (if found) over defaults.
// A non-empty explicit path that does not exist is an error; the implicit
// lookup locations are allowed to be absent. A .env file in the working
// directory is loaded into the environment as a side effect.
func Load(explicitPath string) (*Config, error) {
	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	path := explicitPath
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	overlay := Default()
	if _, err := toml.DecodeFile(path, overlay); err != nil {
		if os.IsNotExist(err) && explicitPath != "" {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}

	overlay.Palette = cfg.Palette.Merge(overlay.Palette)
	return overlay, nil
}

// findConfigFile returns the first config file present in the implicit
// lookup locations, or empty.
func findConfigFile() string {
	candidates := []string{defaultFileName}
	if dir := configDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// configDir returns the XDG config directory for the app.
func configDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
