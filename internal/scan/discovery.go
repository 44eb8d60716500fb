// Package scan walks source trees, decodes C source files, and runs the
// fact extractors over them.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery finds C source files under a root with glob patterns and
// ignore rules.
type Discovery struct {
	rootDir        string
	codePatterns   []compiledPattern
	ignorePatterns []compiledPattern
}

// NewDiscovery creates a new discovery instance.
func NewDiscovery(rootDir string, codePatterns, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{
		rootDir: rootDir,
	}

	for _, pattern := range codePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.codePatterns = append(d.codePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Discover walks the directory tree and returns matching source files.
func (d *Discovery) Discover() ([]string, error) {
	files := []string{}

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}

		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}

		if d.matchesAnyPattern(relPath, d.codePatterns) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// shouldIgnore checks if a path matches any ignore pattern.
func (d *Discovery) shouldIgnore(relPath string) bool {
	// Always ignore the .csift directory and generated result trees
	if strings.HasPrefix(relPath, ".csift/") || relPath == ".csift" {
		return true
	}
	if strings.HasPrefix(relPath, "result_") {
		return true
	}

	if d.matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}

	// Also check if this is a directory that would match with /** suffix.
	// For example, "vendor" should match pattern "vendor/**".
	pathWithSuffix := relPath + "/**"
	return d.matchesAnyPattern(pathWithSuffix, d.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// If path is in the root (no slash), also try matching against patterns
	// with the **/ prefix removed, so "**/*.c" matches both "main.c" and
	// "src/main.c" as users would expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
