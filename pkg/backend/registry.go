package backend

import (
	"fmt"

	"github.com/faypicker/fay/pkg/env"
)

// Registry owns the ordered list of backend variants and resolves the
// user's backend request, including "auto" selection from environment
// signals.
type Registry struct {
	backends []Backend
	byID     map[string]Backend
}

// Choice is a resolution outcome: the selected backend (nil when none) and
// a human-readable reason.
type Choice struct {
	Backend Backend
	Reason  string
}

// NewRegistry creates the registry with all known backends in registration
// order. Registration order is the availability tie-break of last resort.
func NewRegistry() *Registry {
	backends := []Backend{
		NewGnomeBackend(),
		NewSwwwBackend("swww"),
		NewSwwwBackend("awww"),
		NewHyprpaperBackend(),
		NewSwaybgBackend(),
		NewFehBackend(),
	}
	byID := make(map[string]Backend, len(backends))
	for _, b := range backends {
		byID[b.ID()] = b
	}
	return &Registry{backends: backends, byID: byID}
}

// Backends returns all registered backends in registration order.
func (r *Registry) Backends() []Backend {
	return r.backends
}

// Get looks up a backend by identifier. Asking for "swww" falls back to the
// awww fork when the original is not registered.
func (r *Registry) Get(id string) Backend {
	if id == "swww" {
		if primary, ok := r.byID["swww"]; ok {
			return primary
		}
		return r.byID["awww"]
	}
	return r.byID[id]
}

// Available returns the backends whose IsAvailable holds for the given
// environment, in registration order.
func (r *Registry) Available(info env.Info) []Backend {
	var available []Backend
	for _, b := range r.backends {
		if b.IsAvailable(info) {
			available = append(available, b)
		}
	}
	return available
}

// Resolve selects a backend for the given request. An explicit id must name
// a registered and available backend. "auto" walks environment signals in
// priority order (GNOME session, then Hyprland with swww, awww, hyprpaper,
// then Sway, then X11 feh) before falling back to the first available
// backend.
// Environment signals take precedence over raw availability because a tool
// like feh can be installed under an unrelated desktop.
func (r *Registry) Resolve(info env.Info, id string) Choice {
	if id != "auto" {
		b := r.Get(id)
		if b == nil {
			return Choice{Reason: fmt.Sprintf("unknown backend: %s", id)}
		}
		if !b.IsAvailable(info) {
			return Choice{Reason: fmt.Sprintf("backend %q is not available in this environment", id)}
		}
		return Choice{Backend: b, Reason: fmt.Sprintf("selected backend %q", b.ID())}
	}

	if info.IsGnomeSession() {
		if b := r.byID["gnome"]; b != nil && b.IsAvailable(info) {
			return Choice{Backend: b, Reason: "detected GNOME session"}
		}
	}

	if info.Hyprland {
		for _, candidate := range []string{"swww", "awww", "hyprpaper"} {
			if b := r.byID[candidate]; b != nil && b.IsAvailable(info) {
				return Choice{Backend: b, Reason: "detected Hyprland session"}
			}
		}
	}

	if info.Sway {
		if b := r.byID["swaybg"]; b != nil && b.IsAvailable(info) {
			return Choice{Backend: b, Reason: "detected Sway session"}
		}
	}

	if info.IsX11() {
		if b := r.byID["feh"]; b != nil && b.IsAvailable(info) {
			return Choice{Backend: b, Reason: "detected X11 session"}
		}
	}

	if available := r.Available(info); len(available) > 0 {
		return Choice{Backend: available[0], Reason: "using first available backend"}
	}

	return Choice{Reason: "no supported wallpaper backend detected"}
}

// SupportedIDs returns the identifiers accepted on the CLI.
func (r *Registry) SupportedIDs() []string {
	return []string{"auto", "feh", "gnome", "swaybg", "swww", "hyprpaper"}
}
