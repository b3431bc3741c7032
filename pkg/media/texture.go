package media

import "container/list"

// Texture is a loaded, renderable rendition of a thumbnail. The cache owns
// every texture it creates and releases each exactly once, either on LRU
// eviction or on Clear.
type Texture interface {
	// Size returns the texture's pixel dimensions.
	Size() (width, height int)
	// Release frees the texture's resources. Must be idempotent.
	Release()
}

// TextureLoader turns a thumbnail file into a Texture. Implementations
// live with the renderer; the cache only manages handle lifetime.
type TextureLoader interface {
	Load(path string) (Texture, error)
}

// DefaultTextureCacheItems bounds the texture cache when no explicit limit
// is configured.
const DefaultTextureCacheItems = 24

type textureEntry struct {
	key     string
	texture Texture
}

// TextureCache serves the most recently used thumbnail textures with
// strict LRU eviction, keyed by thumbnail path. A path whose load failed
// once is never retried within the process.
//
// Like ThumbnailStore, the cache is confined to the render goroutine.
type TextureCache struct {
	store    *ThumbnailStore
	loader   TextureLoader
	maxItems int

	order   *list.List // front = most recently used
	entries map[string]*list.Element
	failed  map[string]bool
}

// NewTextureCache creates a cache over the given thumbnail store. maxItems
// values below 1 fall back to the default.
func NewTextureCache(store *ThumbnailStore, loader TextureLoader, maxItems int) *TextureCache {
	if maxItems < 1 {
		maxItems = DefaultTextureCacheItems
	}
	return &TextureCache{
		store:    store,
		loader:   loader,
		maxItems: maxItems,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
		failed:   make(map[string]bool),
	}
}

// Get returns the texture for imagePath's thumbnail, loading it on demand.
// It returns nil while the thumbnail is still queued for building, and nil
// permanently once a load has failed.
func (c *TextureCache) Get(imagePath string) Texture {
	key := c.store.Request(imagePath)

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*textureEntry).texture
	}
	if c.failed[key] {
		return nil
	}
	if !fileExists(key) {
		return nil
	}

	texture, err := c.loader.Load(key)
	if err != nil || texture == nil {
		c.failed[key] = true
		return nil
	}

	c.entries[key] = c.order.PushFront(&textureEntry{key: key, texture: texture})
	if c.order.Len() > c.maxItems {
		c.evictOldest()
	}
	return texture
}

// Request enqueues thumbnail building for imagePath without loading a
// texture. Used for read-ahead around the selection.
func (c *TextureCache) Request(imagePath string) {
	c.store.Request(imagePath)
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	return c.order.Len()
}

// Clear releases every held texture and forgets past load failures. Safe
// to call repeatedly, including on shutdown.
func (c *TextureCache) Clear() {
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		elem.Value.(*textureEntry).texture.Release()
	}
	c.order.Init()
	c.entries = make(map[string]*list.Element)
	c.failed = make(map[string]bool)
}

func (c *TextureCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	entry := oldest.Value.(*textureEntry)
	c.order.Remove(oldest)
	delete(c.entries, entry.key)
	entry.texture.Release()
}
