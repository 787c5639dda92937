// Package config holds runtime configuration: defaults, the optional TOML
// config file, CLI flag parsing, and validation.
package config

import (
	"fmt"
	"strings"
	"time"
)

// ColorMode controls ANSI color in diagnostic log output. Data written to
// OUTPUT is never colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultFrameInterval is the minimum spacing between live frames in
// interactive count mode (about 30 frames per second).
const DefaultFrameInterval = 33 * time.Millisecond

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by the config file, then by CLI flags, before being passed (by
// pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args). Empty or "-" input means stdin;
	// empty output means stdout.
	InputPath  string
	OutputPath string

	// Behavior.
	Count         bool
	FrameInterval time.Duration // Default: 33ms.

	// Diagnostics.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	ConfigFile string    // Config file that was loaded, if any.
}

// DefaultConfig returns a Config with every field at its default. Used as
// the base before the config file and flags apply overrides.
func DefaultConfig() Config {
	return Config{
		Count:         false,
		FrameInterval: DefaultFrameInterval,
		Verbose:       false,
		ColorMode:     ColorAuto,
	}
}

// ReadsStdin reports whether input comes from standard input.
func (c *Config) ReadsStdin() bool {
	return c.InputPath == "" || c.InputPath == "-"
}

// WritesStdout reports whether output goes to standard output.
func (c *Config) WritesStdout() bool {
	return c.OutputPath == ""
}

// Validate checks enum and range fields.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return argErrorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
	if c.FrameInterval <= 0 {
		return argErrorf("frame interval must be positive (got %s)", c.FrameInterval)
	}
	return nil
}

// ParseColorMode converts user input into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return "", argErrorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
}

// ArgError reports an invalid invocation: bad flags, positionals, or
// config values.
type ArgError struct {
	Msg string
}

func (e *ArgError) Error() string { return e.Msg }

func argErrorf(format string, args ...any) error {
	return &ArgError{Msg: fmt.Sprintf(format, args...)}
}
