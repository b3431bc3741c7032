package backend

import (
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/faypicker/fay/pkg/env"
)

const gnomeBackgroundSchema = "org.gnome.desktop.background"

// gnomeModes maps normalized modes to GNOME picture-options values.
var gnomeModes = map[string]string{
	ModeFill:   "zoom",
	ModeFit:    "scaled",
	ModeCenter: "centered",
	ModeTile:   "wallpaper",
}

// GnomeBackend sets wallpapers through the GNOME settings database via
// gsettings. Writes are inherently durable, which is also what makes capture
// and restore reliable: the previous picture-uri and picture-options are
// read back directly from the database.
type GnomeBackend struct {
	run         commandFunc
	readSetting func(schema, key string) (string, bool)
}

// NewGnomeBackend creates the GNOME backend.
func NewGnomeBackend() *GnomeBackend {
	return &GnomeBackend{
		run:         runCommand,
		readSetting: readGSetting,
	}
}

// ID implements Backend.
func (b *GnomeBackend) ID() string { return "gnome" }

// IsAvailable implements Backend.
func (b *GnomeBackend) IsAvailable(info env.Info) bool {
	return info.HasCommand("gsettings") && info.IsGnomeSession()
}

// SupportsPreview implements Backend.
func (b *GnomeBackend) SupportsPreview() bool { return true }

// Apply implements Backend. Three sequential key writes: mode first so the
// image lands with the right placement, then the light and dark URIs.
func (b *GnomeBackend) Apply(imagePath, mode string, ctx *ApplyContext, persist bool) Result {
	resolved := EffectiveMode(mode, imagePath, ctx)
	gnomeMode, ok := gnomeModes[resolved]
	if !ok {
		gnomeMode = "zoom"
	}

	abs, err := filepath.Abs(imagePath)
	if err != nil {
		abs = imagePath
	}
	uri := (&url.URL{Scheme: "file", Path: abs}).String()

	writes := [][]string{
		{"set", gnomeBackgroundSchema, "picture-options", gnomeMode},
		{"set", gnomeBackgroundSchema, "picture-uri", uri},
		{"set", gnomeBackgroundSchema, "picture-uri-dark", uri},
	}
	for _, args := range writes {
		if result := b.run("gsettings", args...); !result.OK {
			return result
		}
	}
	return okResult()
}

// Preview implements Backend.
func (b *GnomeBackend) Preview(imagePath, mode string, ctx *ApplyContext) Result {
	return b.Apply(imagePath, mode, ctx, false)
}

// CaptureCurrent implements Backend.
func (b *GnomeBackend) CaptureCurrent() *State {
	uri, ok := b.readSetting(gnomeBackgroundSchema, "picture-uri")
	if !ok || uri == "" {
		return nil
	}
	mode, _ := b.readSetting(gnomeBackgroundSchema, "picture-options")

	path, ok := pathFromFileURI(uri)
	if !ok {
		return nil
	}

	normalized := ModeFill
	for normal, gnome := range gnomeModes {
		if gnome == mode {
			normalized = normal
			break
		}
	}

	return &State{
		BackendID: b.ID(),
		ImagePath: path,
		Mode:      normalized,
		BackendState: map[string]interface{}{
			"picture-options": mode,
		},
	}
}

// Restore implements Backend. The image is re-applied, then the exact
// captured picture-options value is written back, since it may name a GNOME
// placement the normalized modes only approximate.
func (b *GnomeBackend) Restore(state *State, ctx *ApplyContext) Result {
	result := restoreByReapply(b, state, ctx)
	if !result.OK {
		return result
	}

	if state.BackendState != nil {
		if raw, ok := state.BackendState["picture-options"].(string); ok && raw != "" {
			return b.run("gsettings", "set", gnomeBackgroundSchema, "picture-options", raw)
		}
	}
	return result
}

// readGSetting runs `gsettings get` and strips the surrounding quote
// characters GVariant adds to string values.
func readGSetting(schema, key string) (string, bool) {
	out, err := exec.Command("gsettings", "get", schema, key).Output()
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(out))
	if strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") && len(value) >= 2 {
		value = value[1 : len(value)-1]
	}
	return value, true
}

// pathFromFileURI converts a file:// URI to a filesystem path.
func pathFromFileURI(uri string) (string, bool) {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" || parsed.Path == "" {
		return "", false
	}
	return parsed.Path, true
}
