// Package config provides configuration and well-known path management for fay.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Config holds all user-tunable settings for the picker.
type Config struct {
	Backend      string `toml:"backend"`
	Mode         string `toml:"mode"`
	VisibleCards int    `toml:"visible_cards"`

	AutoPreview    bool `toml:"auto_preview"`
	PreviewDelayMS int  `toml:"preview_delay_ms"`

	ThumbMaxWidth  int `toml:"thumb_max_width"`
	ThumbMaxHeight int `toml:"thumb_max_height"`

	TextureCacheSize int `toml:"texture_cache_size"`

	// Screen dimensions feed auto mode resolution. Terminals cannot query
	// the desktop's pixel size, so these are configured.
	ScreenWidth  int `toml:"screen_width"`
	ScreenHeight int `toml:"screen_height"`
}

var (
	instance *Config
	once     sync.Once
)

// GetConfig returns the singleton instance of Config, loading it from the
// user's config file on first use. A missing file is not an error; defaults
// apply.
func GetConfig() *Config {
	once.Do(func() {
		instance = defaultConfig()
		if err := instance.loadFromFile(GetFilename()); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "%s: error loading config: %v\n", AppName, err)
		}
	})
	return instance
}

func defaultConfig() *Config {
	return &Config{
		Backend:          DefaultBackend,
		Mode:             DefaultMode,
		VisibleCards:     DefaultVisibleCards,
		AutoPreview:      DefaultAutoPreview,
		PreviewDelayMS:   DefaultPreviewDelayMS,
		ThumbMaxWidth:    DefaultThumbMaxWidth,
		ThumbMaxHeight:   DefaultThumbMaxHeight,
		TextureCacheSize: DefaultTextureCacheSize,
		ScreenWidth:      DefaultScreenWidth,
		ScreenHeight:     DefaultScreenHeight,
	}
}

// loadFromFile loads configuration from the specified TOML file.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}
	return nil
}

// GetFilename returns the path to the user's config file.
func GetFilename() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// ConfigDir returns the directory holding the user's config file.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+AppName)
	}
	return filepath.Join(home, ".config", AppName)
}

// CacheDir returns the base cache directory for thumbnails.
func CacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".cache", AppName)
}

// ThumbnailCacheDir returns the directory where thumbnails are stored.
func ThumbnailCacheDir() string {
	return filepath.Join(CacheDir(), "thumbnails")
}

// StateDir returns the directory holding persisted selection state.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".local", "state", AppName)
}

// RuntimeDir returns the directory for the single-instance lock file.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return os.TempDir()
}
