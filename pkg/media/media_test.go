package media

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 40, G: 80, B: 120, A: 255})
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("/walls/a.png"))
	assert.True(t, IsImageFile("/walls/B.JPG"))
	assert.True(t, IsImageFile("photo.webp"))
	assert.False(t, IsImageFile("/walls/readme.txt"))
	assert.False(t, IsImageFile("/walls/noext"))
}

func TestListImagesSortedCaseInsensitive(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"Zebra.png", "apple.jpg", "Mango.jpeg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "sub.png"), 0o755))

	images := ListImages(tmpDir)
	require.Len(t, images, 3)
	assert.Equal(t, "apple.jpg", filepath.Base(images[0]))
	assert.Equal(t, "Mango.jpeg", filepath.Base(images[1]))
	assert.Equal(t, "Zebra.png", filepath.Base(images[2]))
}

func TestListImagesMissingDir(t *testing.T) {
	assert.Empty(t, ListImages(filepath.Join(t.TempDir(), "nope")))
}

func TestThumbnailNameStable(t *testing.T) {
	tmpDir := t.TempDir()
	img := writeTestImage(t, tmpDir, "a.png", 64, 48)

	first := ThumbnailName(img, 720, 480)
	second := ThumbnailName(img, 720, 480)
	assert.Equal(t, first, second)
	assert.Regexp(t, `^[0-9a-f]{40}\.png$`, first)
}

func TestThumbnailNameChangesWithSource(t *testing.T) {
	tmpDir := t.TempDir()
	img := writeTestImage(t, tmpDir, "a.png", 64, 48)
	before := ThumbnailName(img, 720, 480)

	// Different target box, same source.
	assert.NotEqual(t, before, ThumbnailName(img, 360, 240))

	// Same source path, new content and mtime.
	require.NoError(t, os.WriteFile(img, []byte("replaced"), 0o644))
	newTime := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(img, newTime, newTime))
	assert.NotEqual(t, before, ThumbnailName(img, 720, 480))
}
