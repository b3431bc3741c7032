package backend

import (
	"os/exec"

	"github.com/faypicker/fay/pkg/env"
)

// swwwModes maps normalized modes to swww --resize values. swww has no
// real center or tile placement; "no" leaves the image unscaled, which is
// the closest approximation.
var swwwModes = map[string]string{
	ModeFill:   "crop",
	ModeFit:    "fit",
	ModeCenter: "no",
	ModeTile:   "no",
}

// SwwwBackend sets wallpapers through the swww animated wallpaper daemon
// (or its awww fork, selected by binary name). Applying requires the daemon
// to be up, so every apply first ensures it with a query/init/daemon chain.
type SwwwBackend struct {
	binary   string
	run      commandFunc
	lookPath func(name string) bool
}

// NewSwwwBackend creates a swww backend bound to the given binary name,
// "swww" or "awww".
func NewSwwwBackend(binary string) *SwwwBackend {
	return &SwwwBackend{
		binary: binary,
		run:    runCommand,
		lookPath: func(name string) bool {
			_, err := exec.LookPath(name)
			return err == nil
		},
	}
}

// ID implements Backend.
func (b *SwwwBackend) ID() string {
	if b.binary == "swww" {
		return "swww"
	}
	return "awww"
}

// IsAvailable implements Backend.
func (b *SwwwBackend) IsAvailable(info env.Info) bool {
	return info.IsWayland() && info.HasCommand(b.binary)
}

// SupportsPreview implements Backend.
func (b *SwwwBackend) SupportsPreview() bool { return true }

// Apply implements Backend.
func (b *SwwwBackend) Apply(imagePath, mode string, ctx *ApplyContext, persist bool) Result {
	if result := b.ensureDaemon(); !result.OK {
		return result
	}

	resolved := EffectiveMode(mode, imagePath, ctx)
	resize, ok := swwwModes[resolved]
	if !ok {
		resize = "crop"
	}
	return b.run(b.binary, "img", imagePath, "--resize", resize)
}

// Preview implements Backend.
func (b *SwwwBackend) Preview(imagePath, mode string, ctx *ApplyContext) Result {
	return b.Apply(imagePath, mode, ctx, false)
}

// CaptureCurrent implements Backend. swww keeps its state in the daemon
// only; there is no durable store to read back.
func (b *SwwwBackend) CaptureCurrent() *State { return nil }

// Restore implements Backend.
func (b *SwwwBackend) Restore(state *State, ctx *ApplyContext) Result {
	return restoreByReapply(b, state, ctx)
}

// ensureDaemon verifies the daemon answers a query, starting it if needed:
// query, then `init`, then the standalone swww-daemon binary as a last
// resort.
func (b *SwwwBackend) ensureDaemon() Result {
	if query := b.run(b.binary, "query"); query.OK {
		return query
	}

	initResult := b.run(b.binary, "init")
	if initResult.OK {
		return initResult
	}

	if b.binary == "swww" && b.lookPath("swww-daemon") {
		if daemon := b.run("swww-daemon"); daemon.OK {
			return okResult()
		}
	}
	return initResult
}
