package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "auto", cfg.Backend)
	assert.Equal(t, "auto", cfg.Mode)
	assert.Equal(t, DefaultVisibleCards, cfg.VisibleCards)
	assert.True(t, cfg.AutoPreview)
	assert.Equal(t, DefaultTextureCacheSize, cfg.TextureCacheSize)
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	content := []byte("backend = \"feh\"\nmode = \"fill\"\nvisible_cards = 7\nauto_preview = false\n")
	assert.NoError(t, os.WriteFile(path, content, 0644))

	cfg := defaultConfig()
	assert.NoError(t, cfg.loadFromFile(path))
	assert.Equal(t, "feh", cfg.Backend)
	assert.Equal(t, "fill", cfg.Mode)
	assert.Equal(t, 7, cfg.VisibleCards)
	assert.False(t, cfg.AutoPreview)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultThumbMaxWidth, cfg.ThumbMaxWidth)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.loadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadFromFileMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	assert.NoError(t, os.WriteFile(path, []byte("backend = [broken"), 0644))

	cfg := defaultConfig()
	assert.Error(t, cfg.loadFromFile(path))
}

func TestRuntimeDirFallsBackToTemp(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Equal(t, os.TempDir(), RuntimeDir())
}

func TestThumbnailCacheDirHonorsXDG(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmpDir)
	assert.Equal(t, filepath.Join(tmpDir, AppName, "thumbnails"), ThumbnailCacheDir())
}
