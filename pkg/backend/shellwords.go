package backend

import (
	"fmt"
	"strings"
)

// splitShellWords splits a shell command line into words, honoring single
// and double quotes and backslash escapes. It covers the subset of shell
// syntax feh writes into ~/.fehbg; anything fancier (substitutions,
// redirects) passes through as literal text.
func splitShellWords(line string) ([]string, error) {
	var words []string
	var current strings.Builder
	inWord := false

	const (
		stateNone = iota
		stateSingle
		stateDouble
	)
	state := stateNone
	escaped := false

	for _, r := range line {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}
		switch state {
		case stateSingle:
			if r == '\'' {
				state = stateNone
			} else {
				current.WriteRune(r)
			}
		case stateDouble:
			switch r {
			case '"':
				state = stateNone
			case '\\':
				escaped = true
			default:
				current.WriteRune(r)
			}
		default:
			switch r {
			case '\'':
				state = stateSingle
				inWord = true
			case '"':
				state = stateDouble
				inWord = true
			case '\\':
				escaped = true
				inWord = true
			case ' ', '\t':
				if inWord {
					words = append(words, current.String())
					current.Reset()
					inWord = false
				}
			default:
				current.WriteRune(r)
				inWord = true
			}
		}
	}

	if state != stateNone || escaped {
		return nil, fmt.Errorf("unterminated quote in %q", line)
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}
