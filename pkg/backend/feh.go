package backend

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/faypicker/fay/pkg/env"
)

// fehModes maps normalized modes to feh's --bg-* flags.
var fehModes = map[string]string{
	ModeFill:   "bg-fill",
	ModeFit:    "bg-max",
	ModeCenter: "bg-center",
	ModeTile:   "bg-tile",
}

// FehBackend sets wallpapers on X11 through the feh image viewer. feh
// records its last persistent invocation in ~/.fehbg, which doubles as our
// capture source.
type FehBackend struct {
	run       commandFunc
	fehbgPath string
}

// NewFehBackend creates the feh backend.
func NewFehBackend() *FehBackend {
	home, _ := os.UserHomeDir()
	return &FehBackend{
		run:       runCommand,
		fehbgPath: filepath.Join(home, ".fehbg"),
	}
}

// ID implements Backend.
func (b *FehBackend) ID() string { return "feh" }

// IsAvailable implements Backend.
func (b *FehBackend) IsAvailable(info env.Info) bool {
	return info.HasCommand("feh") && info.IsX11()
}

// SupportsPreview implements Backend.
func (b *FehBackend) SupportsPreview() bool { return true }

// Apply implements Backend. A non-persistent apply passes --no-fehbg so the
// invocation is not written to ~/.fehbg.
func (b *FehBackend) Apply(imagePath, mode string, ctx *ApplyContext, persist bool) Result {
	resolved := EffectiveMode(mode, imagePath, ctx)
	fehMode, ok := fehModes[resolved]
	if !ok {
		fehMode = "bg-fill"
	}

	args := []string{}
	if !persist {
		args = append(args, "--no-fehbg")
	}
	args = append(args, "--"+fehMode, imagePath)
	return b.run("feh", args...)
}

// Preview implements Backend.
func (b *FehBackend) Preview(imagePath, mode string, ctx *ApplyContext) Result {
	return b.Apply(imagePath, mode, ctx, false)
}

// CaptureCurrent implements Backend. It parses ~/.fehbg line by line,
// skipping blanks and comments, and takes the last line that invokes feh:
// non-flag arguments are image paths, --bg-* flags are mode hints.
func (b *FehBackend) CaptureCurrent() *State {
	data, err := os.ReadFile(b.fehbgPath)
	if err != nil {
		return nil
	}

	var lastParts []string
	for _, line := range strings.Split(string(data), "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		parts, err := splitShellWords(stripped)
		if err != nil || len(parts) == 0 {
			continue
		}
		if filepath.Base(parts[0]) == "feh" {
			lastParts = parts
		}
	}
	if len(lastParts) == 0 {
		return nil
	}

	var images []string
	for _, arg := range lastParts[1:] {
		if !strings.HasPrefix(arg, "-") {
			images = append(images, expandHome(arg))
		}
	}
	if len(images) == 0 {
		return nil
	}

	rawMode := ModeFill
	for _, arg := range lastParts {
		if !strings.HasPrefix(arg, "--bg-") {
			continue
		}
		switch arg[2:] {
		case "bg-max":
			rawMode = ModeFit
		case "bg-center":
			rawMode = ModeCenter
		case "bg-tile":
			rawMode = ModeTile
		case "bg-fill", "bg-scale":
			rawMode = ModeFill
		}
	}

	return &State{
		BackendID: b.ID(),
		ImagePath: images[len(images)-1],
		Mode:      rawMode,
		BackendState: map[string]interface{}{
			"command": lastParts,
		},
	}
}

// Restore implements Backend. A captured verbatim invocation is replayed
// as-is, since the recorded mode may not be exactly representable by the
// normalized modes; a missing or malformed invocation falls back to a
// mode-keyed non-persistent re-apply.
func (b *FehBackend) Restore(state *State, ctx *ApplyContext) Result {
	if argv := stateCommand(state); len(argv) > 0 {
		return b.run(argv[0], argv[1:]...)
	}
	return restoreByReapply(b, state, ctx)
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
