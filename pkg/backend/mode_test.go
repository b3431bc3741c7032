package backend

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"auto", ModeAuto},
		{"fill", ModeFill},
		{"fit", ModeFit},
		{"center", ModeCenter},
		{"tile", ModeTile},
		{"bg-fill", ModeFill},
		{"bg-max", ModeFit},
		{"bg-center", ModeCenter},
		{"bg-tile", ModeTile},
		{"bg-scale", ModeFit},
		{"bogus", ModeAuto},
		{"", ModeAuto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMode(tt.in), "NormalizeMode(%q)", tt.in)
	}
}

func TestResolveAutoMode(t *testing.T) {
	tests := []struct {
		name    string
		image   image.Point
		screenW int
		screenH int
		want    string
	}{
		{"unknown dimensions", image.Point{}, 1920, 1080, ModeFill},
		{"zero screen", image.Point{X: 800, Y: 600}, 0, 0, ModeFill},
		{"tiny image centers", image.Point{X: 100, Y: 80}, 1920, 1080, ModeCenter},
		{"squarish oversized fits", image.Point{X: 3840, Y: 4320}, 1920, 1080, ModeFit},
		{"squarish larger than screen fits", image.Point{X: 2160, Y: 2160}, 1920, 1080, ModeFit},
		{"orientation mismatch centers", image.Point{X: 1080, Y: 1920}, 1920, 1080, ModeCenter},
		{"strong aspect mismatch centers", image.Point{X: 5760, Y: 1080}, 1920, 1080, ModeCenter},
		{"matching landscape fills", image.Point{X: 2560, Y: 1440}, 1920, 1080, ModeFill},
		{"slightly larger fills", image.Point{X: 1920, Y: 1200}, 1920, 1080, ModeFill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAutoMode(tt.image, tt.screenW, tt.screenH)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, ModeAuto, got, "auto must always resolve")
		})
	}
}

func TestResolveAutoModeScenarios(t *testing.T) {
	// 3840x2160 on 1920x1080: same 16:9 aspect, larger than screen, not
	// squarish -> fill. A square 4K crop -> fit.
	assert.Equal(t, ModeFill, ResolveAutoMode(image.Point{X: 3840, Y: 2160}, 1920, 1080))
	assert.Equal(t, ModeFit, ResolveAutoMode(image.Point{X: 2400, Y: 2160}, 1920, 1080))
	assert.Equal(t, ModeCenter, ResolveAutoMode(image.Point{X: 100, Y: 80}, 1920, 1080))
	assert.Equal(t, ModeCenter, ResolveAutoMode(image.Point{X: 1080, Y: 1920}, 1920, 1080))
}

func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(w, h, imagingTestColor)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestEffectiveMode(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTestImage(t, tmpDir, "small.png", 100, 80)

	ctx := NewApplyContext(1920, 1080)

	// Non-auto passes through untouched.
	assert.Equal(t, ModeTile, EffectiveMode(ModeTile, path, ctx))

	// Auto probes the image and resolves.
	assert.Equal(t, ModeCenter, EffectiveMode(ModeAuto, path, ctx))

	// The probe is memoized.
	size, ok := ctx.CachedSize(path)
	assert.True(t, ok)
	assert.Equal(t, image.Point{X: 100, Y: 80}, size)

	// Unreadable images resolve to fill.
	assert.Equal(t, ModeFill, EffectiveMode(ModeAuto, filepath.Join(tmpDir, "missing.png"), ctx))
}

func TestApplyContextProbeCachesAcrossDeletion(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTestImage(t, tmpDir, "img.png", 640, 480)

	ctx := NewApplyContext(1920, 1080)
	size, ok := ctx.ProbeSize(path)
	assert.True(t, ok)
	assert.Equal(t, image.Point{X: 640, Y: 480}, size)

	// Once cached, the file itself is no longer consulted.
	require.NoError(t, os.Remove(path))
	size, ok = ctx.ProbeSize(path)
	assert.True(t, ok)
	assert.Equal(t, image.Point{X: 640, Y: 480}, size)

	ctx.ClearSizes()
	_, ok = ctx.ProbeSize(path)
	assert.False(t, ok)
}
