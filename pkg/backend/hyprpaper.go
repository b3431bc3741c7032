package backend

import "github.com/faypicker/fay/pkg/env"

// HyprpaperBackend sets wallpapers on Hyprland through hyprctl's hyprpaper
// dispatcher: a preload call followed by a wallpaper call. hyprpaper has no
// placement modes; the requested mode is accepted and ignored.
type HyprpaperBackend struct {
	run commandFunc
}

// NewHyprpaperBackend creates the hyprpaper backend.
func NewHyprpaperBackend() *HyprpaperBackend {
	return &HyprpaperBackend{run: runCommand}
}

// ID implements Backend.
func (b *HyprpaperBackend) ID() string { return "hyprpaper" }

// IsAvailable implements Backend.
func (b *HyprpaperBackend) IsAvailable(info env.Info) bool {
	return info.Hyprland && info.HasCommand("hyprctl")
}

// SupportsPreview implements Backend.
func (b *HyprpaperBackend) SupportsPreview() bool { return true }

// Apply implements Backend.
func (b *HyprpaperBackend) Apply(imagePath, mode string, ctx *ApplyContext, persist bool) Result {
	if result := b.run("hyprctl", "hyprpaper", "preload", imagePath); !result.OK {
		return result
	}
	// Empty monitor selector applies to all monitors.
	return b.run("hyprctl", "hyprpaper", "wallpaper", ","+imagePath)
}

// Preview implements Backend.
func (b *HyprpaperBackend) Preview(imagePath, mode string, ctx *ApplyContext) Result {
	return b.Apply(imagePath, mode, ctx, false)
}

// CaptureCurrent implements Backend.
func (b *HyprpaperBackend) CaptureCurrent() *State { return nil }

// Restore implements Backend.
func (b *HyprpaperBackend) Restore(state *State, ctx *ApplyContext) Result {
	return restoreByReapply(b, state, ctx)
}
