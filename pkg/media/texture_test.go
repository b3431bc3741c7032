package media

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTexture struct {
	path     string
	released int
}

func (f *fakeTexture) Size() (int, int) { return 100, 75 }

func (f *fakeTexture) Release() { f.released++ }

type fakeLoader struct {
	loads    int
	failFor  map[string]bool
	textures []*fakeTexture
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{failFor: make(map[string]bool)}
}

func (f *fakeLoader) Load(path string) (Texture, error) {
	f.loads++
	if f.failFor[path] {
		return nil, errors.New("load failed")
	}
	texture := &fakeTexture{path: path}
	f.textures = append(f.textures, texture)
	return texture, nil
}

func newTestCache(t *testing.T, loader TextureLoader, maxItems int) (*TextureCache, string) {
	t.Helper()
	srcDir := t.TempDir()
	store := newTestStore(t)
	return NewTextureCache(store, loader, maxItems), srcDir
}

// buildImages writes n source images and processes their thumbnails so the
// cache can load them immediately.
func buildImages(t *testing.T, cache *TextureCache, srcDir string, n int) []string {
	t.Helper()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = writeTestImage(t, srcDir, fmt.Sprintf("img%02d.png", i), 200, 150)
		cache.Request(paths[i])
	}
	cache.store.Process(n)
	return paths
}

func TestTextureCacheGetLoadsOnce(t *testing.T) {
	loader := newFakeLoader()
	cache, srcDir := newTestCache(t, loader, 4)
	paths := buildImages(t, cache, srcDir, 1)

	first := cache.Get(paths[0])
	require.NotNil(t, first)
	second := cache.Get(paths[0])
	assert.Same(t, first, second)
	assert.Equal(t, 1, loader.loads)
}

func TestTextureCacheReturnsNilWhileQueued(t *testing.T) {
	loader := newFakeLoader()
	cache, srcDir := newTestCache(t, loader, 4)

	img := writeTestImage(t, srcDir, "img.png", 200, 150)
	assert.Nil(t, cache.Get(img))
	assert.Zero(t, loader.loads)

	cache.store.Process(1)
	assert.NotNil(t, cache.Get(img))
}

func TestTextureCacheEvictsLeastRecentlyUsed(t *testing.T) {
	loader := newFakeLoader()
	cache, srcDir := newTestCache(t, loader, 3)
	paths := buildImages(t, cache, srcDir, 4)

	for _, p := range paths[:3] {
		require.NotNil(t, cache.Get(p))
	}
	// Touch the oldest so the second-oldest becomes the eviction victim.
	require.NotNil(t, cache.Get(paths[0]))

	require.NotNil(t, cache.Get(paths[3]))
	assert.Equal(t, 3, cache.Len())

	require.Len(t, loader.textures, 4)
	assert.Equal(t, 0, loader.textures[0].released)
	assert.Equal(t, 1, loader.textures[1].released)
	assert.Equal(t, 0, loader.textures[2].released)
	assert.Equal(t, 0, loader.textures[3].released)

	// Getting the evicted path loads a fresh texture.
	loads := loader.loads
	require.NotNil(t, cache.Get(paths[1]))
	assert.Equal(t, loads+1, loader.loads)
}

func TestTextureCacheRecencyWithoutSizeChange(t *testing.T) {
	loader := newFakeLoader()
	cache, srcDir := newTestCache(t, loader, 3)
	paths := buildImages(t, cache, srcDir, 3)

	for _, p := range paths {
		require.NotNil(t, cache.Get(p))
	}
	require.NotNil(t, cache.Get(paths[0]))
	assert.Equal(t, 3, cache.Len())
	assert.Equal(t, 3, loader.loads)
}

func TestTextureCacheFailedLoadNeverRetried(t *testing.T) {
	loader := newFakeLoader()
	cache, srcDir := newTestCache(t, loader, 3)
	paths := buildImages(t, cache, srcDir, 1)

	loader.failFor[cache.store.PathFor(paths[0])] = true
	assert.Nil(t, cache.Get(paths[0]))
	assert.Nil(t, cache.Get(paths[0]))
	assert.Equal(t, 1, loader.loads)
}

func TestTextureCacheClearReleasesEverything(t *testing.T) {
	loader := newFakeLoader()
	cache, srcDir := newTestCache(t, loader, 8)
	paths := buildImages(t, cache, srcDir, 3)
	for _, p := range paths {
		require.NotNil(t, cache.Get(p))
	}

	cache.Clear()
	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	for _, texture := range loader.textures {
		assert.Equal(t, 1, texture.released)
	}
}
