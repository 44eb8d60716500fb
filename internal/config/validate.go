package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Validate checks a configuration for contradictions and unusable values.
func Validate(cfg *Config) error {
	if len(cfg.Paths.Code) == 0 {
		return fmt.Errorf("paths.code must list at least one pattern")
	}

	for _, pattern := range cfg.Paths.Code {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid code pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range cfg.Paths.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
	}

	if cfg.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if cfg.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty")
	}

	on := make(map[string]bool, len(cfg.Switches.ForcedOn))
	for _, name := range cfg.Switches.ForcedOn {
		on[name] = true
	}
	for _, name := range cfg.Switches.ForcedOff {
		if on[name] {
			return fmt.Errorf("switch macro %s is both forced on and forced off", name)
		}
	}

	return nil
}
