package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - Defaults load when no config file exists
// - Config file values override defaults
// - Forced merges forced_on and forced_off
// - Validate rejects contradictory and empty settings
// - SourceExtensions derives extensions from code patterns

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, cfg.Paths.Code, "**/*.c")
	assert.Contains(t, cfg.Paths.Code, "**/*.h")
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, ".csift/facts.db", cfg.Storage.Path)
	assert.Empty(t, cfg.Switches.ForcedOn)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	configDir := filepath.Join(root, ".csift")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	yml := `
paths:
  code:
    - "src/**/*.c"
output:
  dir: out
switches:
  forced_on:
    - ALWAYS_ON
  forced_off:
    - NEVER_ON
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(yml), 0644))

	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**/*.c"}, cfg.Paths.Code)
	assert.Equal(t, "out", cfg.Output.Dir)

	forced := cfg.Forced()
	assert.Equal(t, map[string]bool{"ALWAYS_ON": true, "NEVER_ON": false}, forced)
}

func TestValidate_ContradictoryForcedSwitch(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Switches.ForcedOn = []string{"DEBUG"}
	cfg.Switches.ForcedOff = []string{"DEBUG"}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEBUG")
}

func TestValidate_RejectsEmptyPatterns(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Paths.Code = nil

	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsBadPattern(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Paths.Code = []string{"[bad"}

	assert.Error(t, Validate(cfg))
}

func TestSourceExtensions(t *testing.T) {
	t.Parallel()

	cfg := &Config{Paths: PathsConfig{Code: []string{"**/*.c", "**/*.h", "src/**/*.c"}}}

	exts := cfg.SourceExtensions()
	assert.ElementsMatch(t, []string{".c", ".h"}, exts)
}
