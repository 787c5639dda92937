// Package term provides terminal detection, the buffered output sink the
// engines write to, and the scoped alternate-screen surface used by
// interactive count mode.
package term

import (
	"os"
	"strings"

	xterm "github.com/charmbracelet/x/term"

	"github.com/backmassage/uniqs/internal/config"
)

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return xterm.IsTerminal(f.Fd())
}

// ColorEnabled resolves whether diagnostic output written to f should be
// colored, based on the configured mode, TTY detection, and the NO_COLOR
// env var (https://no-color.org).
func ColorEnabled(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}
