// Package media maintains the picker's disk thumbnail cache and the
// bounded in-memory texture cache built on top of it.
package media

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// thumbCacheVersion is baked into every cache key. Bumping it invalidates
// every existing thumbnail without touching the files.
const thumbCacheVersion = "v1"

// imageExtensions lists the file suffixes the picker treats as images.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".webp": true,
}

// IsImageFile reports whether the path has a recognized image extension.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ListImages returns the image files directly inside dir, sorted by
// case-insensitive file name. A missing or unreadable directory yields an
// empty list.
func ListImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		images = append(images, filepath.Join(dir, entry.Name()))
	}
	sort.Slice(images, func(i, j int) bool {
		return strings.ToLower(filepath.Base(images[i])) < strings.ToLower(filepath.Base(images[j]))
	})
	return images
}

// ThumbnailName derives the cache file name for an image at a given target
// box size. The key hashes the resolved path together with the source file's
// size and mtime, so any change to the source yields a fresh key and the
// stale thumbnail simply stops being referenced.
func ThumbnailName(imagePath string, maxWidth, maxHeight int) string {
	resolved, err := filepath.Abs(imagePath)
	if err != nil {
		resolved = imagePath
	}
	if target, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = target
	}

	var size, mtimeNs int64
	if info, err := os.Stat(imagePath); err == nil {
		size = info.Size()
		mtimeNs = info.ModTime().UnixNano()
	}

	keySource := fmt.Sprintf("%s|%d|%d|%dx%d|%s",
		resolved, size, mtimeNs, maxWidth, maxHeight, thumbCacheVersion)
	return fmt.Sprintf("%x.png", sha1.Sum([]byte(keySource)))
}
