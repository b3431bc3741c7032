// Package env takes a one-shot snapshot of the desktop session: which
// display protocol is running, which desktop/compositor is signaled, and
// which external wallpaper tools are installed. The snapshot is immutable;
// everything downstream makes decisions from it instead of re-reading the
// process environment.
package env

import (
	"os"
	"os/exec"
	"strings"
)

// KnownCommands lists the external tools the backends may invoke.
var KnownCommands = []string{
	"feh",
	"gsettings",
	"swaybg",
	"swaymsg",
	"swww",
	"awww",
	"swww-daemon",
	"hyprctl",
}

// Info is a snapshot of session and desktop signals plus the set of
// available external commands. Created once per run, never mutated.
type Info struct {
	SessionType    string
	DesktopSession string
	CurrentDesktop string
	WaylandDisplay string
	XDisplay       string
	Sway           bool
	Hyprland       bool
	Commands       map[string]bool
}

// Detect builds an Info from the process environment and PATH. Extra
// command names are probed in addition to KnownCommands.
func Detect(extraCommands ...string) Info {
	names := append([]string{}, KnownCommands...)
	names = append(names, extraCommands...)

	commands := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := exec.LookPath(name); err == nil {
			commands[name] = true
		}
	}

	currentDesktop := strings.TrimSpace(os.Getenv("XDG_CURRENT_DESKTOP"))

	return Info{
		SessionType:    strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE"))),
		DesktopSession: strings.TrimSpace(os.Getenv("DESKTOP_SESSION")),
		CurrentDesktop: currentDesktop,
		WaylandDisplay: strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")),
		XDisplay:       strings.TrimSpace(os.Getenv("DISPLAY")),
		Sway:           os.Getenv("SWAYSOCK") != "" || strings.Contains(strings.ToLower(currentDesktop), "sway"),
		Hyprland:       os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" || strings.Contains(strings.ToLower(currentDesktop), "hyprland"),
		Commands:       commands,
	}
}

// IsWayland reports whether the session runs on Wayland.
func (i Info) IsWayland() bool {
	return i.SessionType == "wayland" || i.WaylandDisplay != ""
}

// IsX11 reports whether the session runs on X11.
func (i Info) IsX11() bool {
	return i.SessionType == "x11" || i.XDisplay != ""
}

// HasCommand reports whether the named external tool was found on PATH.
func (i Info) HasCommand(name string) bool {
	return i.Commands[name]
}

// IsGnomeSession reports whether the desktop identifiers point at a GNOME
// (or Ubuntu) session.
func (i Info) IsGnomeSession() bool {
	value := strings.ToLower(i.CurrentDesktop + ":" + i.DesktopSession)
	return strings.Contains(value, "gnome") || strings.Contains(value, "ubuntu")
}
