package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - Commands fail cleanly on missing files
// - switches --expand writes one variant file per case
// - scan --quiet produces result trees and the fact database
//
// Commands share package-level flag state, so these tests do not run in
// parallel.

func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestStrip_MissingFile(t *testing.T) {
	err := execute("strip", filepath.Join(t.TempDir(), "absent.c"))
	assert.Error(t, err)
}

func TestSwitches_ExpandWritesVariants(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "main.c")
	require.NoError(t, os.WriteFile(src, []byte("#ifdef DEBUG\nint trace;\n#endif\nint x;\n"), 0644))

	out := filepath.Join(root, "out")
	require.NoError(t, execute("switches", src, "--expand", out))

	var found []string
	err := filepath.Walk(out, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			found = append(found, filepath.Base(path))
		}
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sw_case_01_main.c", "sw_case_02_main.c"}, found)
}

func TestScan_EndToEnd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.c"),
		[]byte("#define LIMIT 10\nvoid loop() { tick(); }\n"), 0644))

	require.NoError(t, execute("scan", root, "--quiet"))

	stripped, err := os.ReadFile(filepath.Join(root, "result_comment", "main.c"))
	require.NoError(t, err)
	assert.Contains(t, string(stripped), "#define LIMIT 10")

	_, err = os.Stat(filepath.Join(root, ".csift", "facts.db"))
	assert.NoError(t, err)

	defines, err := os.ReadFile(filepath.Join(root, "result_define", "main.c"))
	require.NoError(t, err)
	assert.Contains(t, string(defines), "#define LIMIT 10")
}
