package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWayland(t *testing.T) {
	assert.True(t, Info{SessionType: "wayland"}.IsWayland())
	assert.True(t, Info{WaylandDisplay: "wayland-1"}.IsWayland())
	assert.False(t, Info{SessionType: "x11"}.IsWayland())
}

func TestIsX11(t *testing.T) {
	assert.True(t, Info{SessionType: "x11"}.IsX11())
	assert.True(t, Info{XDisplay: ":0"}.IsX11())
	assert.False(t, Info{SessionType: "wayland"}.IsX11())
}

func TestIsGnomeSession(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want bool
	}{
		{"gnome current desktop", Info{CurrentDesktop: "GNOME"}, true},
		{"ubuntu session", Info{DesktopSession: "ubuntu"}, true},
		{"mixed case", Info{CurrentDesktop: "ubuntu:GNOME"}, true},
		{"kde", Info{CurrentDesktop: "KDE"}, false},
		{"empty", Info{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.IsGnomeSession())
		})
	}
}

func TestHasCommand(t *testing.T) {
	info := Info{Commands: map[string]bool{"feh": true}}
	assert.True(t, info.HasCommand("feh"))
	assert.False(t, info.HasCommand("gsettings"))

	// A nil command set behaves as "nothing available".
	assert.False(t, Info{}.HasCommand("feh"))
}

func TestDetectReadsSignals(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", " Wayland ")
	t.Setenv("XDG_CURRENT_DESKTOP", "Hyprland")
	t.Setenv("DESKTOP_SESSION", "hyprland")
	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	t.Setenv("DISPLAY", "")
	t.Setenv("SWAYSOCK", "")
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "abc123")

	info := Detect()
	assert.Equal(t, "wayland", info.SessionType)
	assert.Equal(t, "Hyprland", info.CurrentDesktop)
	assert.True(t, info.Hyprland)
	assert.False(t, info.Sway)
	assert.True(t, info.IsWayland())
}

func TestDetectSwaySocket(t *testing.T) {
	t.Setenv("XDG_CURRENT_DESKTOP", "")
	t.Setenv("SWAYSOCK", "/run/user/1000/sway.sock")
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")

	info := Detect()
	assert.True(t, info.Sway)
	assert.False(t, info.Hyprland)
}
