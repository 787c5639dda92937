package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the TOML layout. Pointer fields distinguish "absent"
// from the zero value so only keys present in the file override defaults.
type fileConfig struct {
	Count         *bool     `toml:"count"`
	Verbose       *bool     `toml:"verbose"`
	Color         *string   `toml:"color"`
	LogFile       *string   `toml:"log_file"`
	FrameInterval *duration `toml:"frame_interval"`
}

// duration decodes TOML strings such as "33ms" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return argErrorf("invalid frame_interval %q: %v", text, err)
	}
	d.Duration = v
	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/uniqs/config.toml (or the
// platform equivalent), or "" when no config directory is known.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "uniqs", "config.toml")
}

// LoadFile applies the keys present in the TOML file at path to cfg.
// Unknown keys are rejected so typos don't go unnoticed.
func LoadFile(cfg *Config, path string) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return argErrorf("%s: unknown config key(s): %s", path, strings.Join(keys, ", "))
	}

	if fc.Count != nil {
		cfg.Count = *fc.Count
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Color != nil {
		mode, err := ParseColorMode(*fc.Color)
		if err != nil {
			return err
		}
		cfg.ColorMode = mode
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.FrameInterval != nil {
		cfg.FrameInterval = fc.FrameInterval.Duration
	}
	cfg.ConfigFile = path
	return nil
}
