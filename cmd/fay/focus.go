package main

import "os/exec"

// focusExistingWindow asks the window manager to raise an already-running
// picker, trying xdotool first and wmctrl second. Purely best effort.
func focusExistingWindow(title string) bool {
	commands := [][]string{
		{"xdotool", "search", "--name", title, "windowactivate"},
		{"wmctrl", "-a", title},
	}
	for _, argv := range commands {
		if err := exec.Command(argv[0], argv[1:]...).Run(); err == nil {
			return true
		}
	}
	return false
}
