package picker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/faypicker/fay/pkg/backend"
	"github.com/faypicker/fay/pkg/env"
)

// BuildDiagnostics renders the environment report printed by the diagnose
// command and after backend-resolution failures.
func BuildDiagnostics(registry *backend.Registry, info env.Info) string {
	var b strings.Builder

	b.WriteString("Environment:\n")
	fmt.Fprintf(&b, "  session_type: %s\n", orUnknown(info.SessionType))
	fmt.Fprintf(&b, "  current_desktop: %s\n", orUnknown(info.CurrentDesktop))
	fmt.Fprintf(&b, "  desktop_session: %s\n", orUnknown(info.DesktopSession))
	fmt.Fprintf(&b, "  wayland_display: %s\n", orDash(info.WaylandDisplay))
	fmt.Fprintf(&b, "  x_display: %s\n", orDash(info.XDisplay))
	fmt.Fprintf(&b, "  sway: %t\n", info.Sway)
	fmt.Fprintf(&b, "  hyprland: %t\n", info.Hyprland)
	fmt.Fprintf(&b, "  commands: %s\n", commandList(info))

	b.WriteString("\nBackends:\n")
	for _, be := range registry.Backends() {
		status := "unavailable"
		if be.IsAvailable(info) {
			status = "available"
		}
		fmt.Fprintf(&b, "  %s: %s\n", be.ID(), status)
	}

	choice := registry.Resolve(info, "auto")
	selected := "none"
	if choice.Backend != nil {
		selected = choice.Backend.ID()
	}
	fmt.Fprintf(&b, "\nAuto backend: %s\n", selected)
	fmt.Fprintf(&b, "Reason: %s", choice.Reason)

	return b.String()
}

func commandList(info env.Info) string {
	var names []string
	for name, present := range info.Commands {
		if present {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "(none detected)"
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
