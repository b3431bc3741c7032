// Package backend implements the pluggable wallpaper appliers. Each backend
// wraps one desktop-specific external mechanism (a setter binary, the GNOME
// settings database, or a compositor IPC tool) behind a common contract:
// availability, apply/preview, and best-effort capture/restore of the
// wallpaper state that was in place before previewing started.
package backend

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"sync"

	"github.com/faypicker/fay/pkg/env"
	"github.com/faypicker/fay/util/log"

	// Decoders for dimension probing. JPEG and PNG are the common cases;
	// GIF, BMP and WebP show up in wallpaper directories often enough to
	// matter.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Result is the uniform outcome of any backend operation. External-call
// failures are folded in here and never propagate past the backend boundary.
type Result struct {
	OK  bool
	Err string
}

func okResult() Result {
	return Result{OK: true}
}

func errResult(format string, v ...interface{}) Result {
	return Result{OK: false, Err: fmt.Sprintf(format, v...)}
}

// State is a restorable snapshot of a backend's wallpaper configuration:
// either "what was there before the picker started" or the last confirmed
// selection. Backend-specific restore data (e.g. a verbatim setter
// invocation) lives in BackendState.
type State struct {
	BackendID    string                 `json:"backend_id"`
	ImagePath    string                 `json:"image_path"`
	Mode         string                 `json:"mode"`
	BackendState map[string]interface{} `json:"backend_state,omitempty"`
}

// Backend is the contract every wallpaper mechanism implements.
type Backend interface {
	// ID returns the stable identifier used on the CLI and in saved state.
	ID() string

	// IsAvailable reports whether this backend can run in the given
	// environment. It must not perform side effects.
	IsAvailable(info env.Info) bool

	// SupportsPreview reports whether the backend can cheaply apply
	// non-persistent previews. Callers skip preview-on-hover when false.
	SupportsPreview() bool

	// Apply sets the wallpaper. With persist false the call must not write
	// durable state that the backend's own session-restore mechanism would
	// pick up on next login.
	Apply(imagePath, mode string, ctx *ApplyContext, persist bool) Result

	// Preview applies the wallpaper non-persistently.
	Preview(imagePath, mode string, ctx *ApplyContext) Result

	// CaptureCurrent reads the backend's current wallpaper state directly
	// from its durable store. Returns nil when no state can be determined.
	CaptureCurrent() *State

	// Restore replays a captured State, best effort.
	Restore(state *State, ctx *ApplyContext) Result
}

// ApplyContext carries per-run screen geometry and a lazily populated cache
// of source image dimensions. It is shared by reference across all backend
// calls within one run; the preview worker may probe sizes concurrently with
// the render thread, so the cache is guarded.
type ApplyContext struct {
	ScreenWidth  int
	ScreenHeight int

	mu    sync.Mutex
	sizes map[string]image.Point
}

// NewApplyContext creates a context for the given screen dimensions.
func NewApplyContext(screenWidth, screenHeight int) *ApplyContext {
	return &ApplyContext{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		sizes:        make(map[string]image.Point),
	}
}

// CachedSize returns a previously probed or remembered source image size.
func (c *ApplyContext) CachedSize(imagePath string) (image.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	size, ok := c.sizes[imagePath]
	return size, ok
}

// RememberSize records a known source image size, e.g. one recovered from a
// thumbnail sidecar record, so auto mode resolution can skip the decode.
func (c *ApplyContext) RememberSize(imagePath string, size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sizes[imagePath] = size
}

// ProbeSize returns the pixel dimensions of the image, decoding the header
// once and memoizing the result for the lifetime of the context.
func (c *ApplyContext) ProbeSize(imagePath string) (image.Point, bool) {
	if size, ok := c.CachedSize(imagePath); ok {
		return size, true
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return image.Point{}, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Point{}, false
	}

	size := image.Point{X: cfg.Width, Y: cfg.Height}
	c.RememberSize(imagePath, size)
	return size, true
}

// ClearSizes empties the size cache, e.g. after a directory rescan.
func (c *ApplyContext) ClearSizes() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.sizes)
}

// commandFunc runs an external tool and reports the outcome. Backends hold
// one so tests can intercept invocations.
type commandFunc func(name string, args ...string) Result

// runCommand executes an external tool, discarding stdout/stderr. Only the
// exit status matters.
func runCommand(name string, args ...string) Result {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return errResult("command failed with exit code %d: %s", exitErr.ExitCode(), name)
		}
		return errResult("running %s: %v", name, err)
	}
	return okResult()
}

// restoreByReapply is the default Restore behavior: re-apply the captured
// image and mode non-persistently. Backends that stored a verbatim
// invocation replay that instead.
func restoreByReapply(b Backend, state *State, ctx *ApplyContext) Result {
	if state == nil {
		return errResult("no state to restore")
	}
	if _, err := os.Stat(state.ImagePath); err != nil {
		return errResult("wallpaper not found: %s", state.ImagePath)
	}
	log.Debugf("restoring %s via re-apply of %s", b.ID(), state.ImagePath)
	return b.Apply(state.ImagePath, state.Mode, ctx, false)
}

// stateCommand extracts a stored verbatim invocation from a captured state.
func stateCommand(state *State) []string {
	if state == nil || state.BackendState == nil {
		return nil
	}
	raw, ok := state.BackendState["command"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		// JSON round trips turn the argv into []interface{}.
		argv := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			argv = append(argv, s)
		}
		return argv
	}
	return nil
}
