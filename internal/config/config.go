package config

import (
	"path/filepath"
	"strings"
)

// Config represents the complete csift configuration.
// It can be loaded from .csift/config.yml with environment variable overrides.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Switches SwitchesConfig `yaml:"switches" mapstructure:"switches"`
	Magic    MagicConfig    `yaml:"magic" mapstructure:"magic"`
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Code   []string `yaml:"code" mapstructure:"code"`     // glob patterns for source files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// OutputConfig defines where result trees are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // root for result_* directories
}

// SwitchesConfig pins switch macros to a fixed state so they drop out of
// case enumeration.
type SwitchesConfig struct {
	ForcedOn  []string `yaml:"forced_on" mapstructure:"forced_on"`
	ForcedOff []string `yaml:"forced_off" mapstructure:"forced_off"`
}

// MagicConfig tunes the magic-number report.
type MagicConfig struct {
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // literals to drop, e.g. ["0", "1"]
}

// StorageConfig defines the fact database location.
type StorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // SQLite file, relative to the scan root
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Code: []string{
				"**/*.c",
				"**/*.h",
				"**/*.cpp",
				"**/*.cc",
				"**/*.hpp",
			},
			Ignore: []string{
				"vendor/**",
				".git/**",
				"build/**",
			},
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Storage: StorageConfig{
			Path: ".csift/facts.db",
		},
	}
}

// Forced returns the pinned switch assignment: forced-on macros true,
// forced-off macros false.
func (c *Config) Forced() map[string]bool {
	forced := make(map[string]bool, len(c.Switches.ForcedOn)+len(c.Switches.ForcedOff))
	for _, name := range c.Switches.ForcedOn {
		forced[name] = true
	}
	for _, name := range c.Switches.ForcedOff {
		forced[name] = false
	}
	return forced
}

// SourceExtensions extracts unique file extensions from the code patterns,
// with the leading dot. Used by the watcher's event filter.
func (c *Config) SourceExtensions() []string {
	extMap := make(map[string]bool)
	for _, pattern := range c.Paths.Code {
		base := filepath.Base(pattern)
		ext := filepath.Ext(base)
		if ext != "" && !strings.ContainsAny(ext, "*?[") {
			extMap[ext] = true
		}
	}

	exts := make([]string, 0, len(extMap))
	for ext := range extMap {
		exts = append(exts, ext)
	}
	return exts
}
