package tui

import "github.com/charmbracelet/bubbles/key"

// carouselKeyMap defines the picker's key bindings.
type carouselKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Rescan  key.Binding
}

func defaultCarouselKeyMap() carouselKeyMap {
	return carouselKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h/a", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l/d", "next"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "set wallpaper"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "cancel"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
	}
}

func (k carouselKeyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Confirm, k.Rescan, k.Cancel}
}
