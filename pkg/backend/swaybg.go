package backend

import "github.com/faypicker/fay/pkg/env"

// swaybgModes maps normalized modes to swaybg scaling modes. The names
// happen to match, but the table keeps unknown modes from leaking through.
var swaybgModes = map[string]string{
	ModeFill:   "fill",
	ModeFit:    "fit",
	ModeCenter: "center",
	ModeTile:   "tile",
}

// SwaybgBackend sets wallpapers on Sway through the output-targeted
// `swaymsg output * bg` IPC command. Sway keeps no durable wallpaper record
// the picker could read back, so capture is unsupported.
type SwaybgBackend struct {
	run commandFunc
}

// NewSwaybgBackend creates the swaybg backend.
func NewSwaybgBackend() *SwaybgBackend {
	return &SwaybgBackend{run: runCommand}
}

// ID implements Backend.
func (b *SwaybgBackend) ID() string { return "swaybg" }

// IsAvailable implements Backend.
func (b *SwaybgBackend) IsAvailable(info env.Info) bool {
	return info.Sway && info.HasCommand("swaymsg")
}

// SupportsPreview implements Backend.
func (b *SwaybgBackend) SupportsPreview() bool { return true }

// Apply implements Backend. The `*` selector targets every output.
func (b *SwaybgBackend) Apply(imagePath, mode string, ctx *ApplyContext, persist bool) Result {
	resolved := EffectiveMode(mode, imagePath, ctx)
	swayMode, ok := swaybgModes[resolved]
	if !ok {
		swayMode = "fill"
	}
	return b.run("swaymsg", "output", "*", "bg", imagePath, swayMode)
}

// Preview implements Backend.
func (b *SwaybgBackend) Preview(imagePath, mode string, ctx *ApplyContext) Result {
	return b.Apply(imagePath, mode, ctx, false)
}

// CaptureCurrent implements Backend.
func (b *SwaybgBackend) CaptureCurrent() *State { return nil }

// Restore implements Backend.
func (b *SwaybgBackend) Restore(state *State, ctx *ApplyContext) Result {
	return restoreByReapply(b, state, ctx)
}
