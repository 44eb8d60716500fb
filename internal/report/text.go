// Package report writes extraction results to the per-tool result trees:
// annotated text files for stripped source, defines, macros, and tables,
// CSV files for the row-shaped facts, and per-case source variants.
// Each tree mirrors the scanned file's relative path.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/csift/csift/internal/extract"
	"github.com/csift/csift/internal/preproc"
)

// Result tree directory names.
const (
	DirComment     = "result_comment"
	DirDefine      = "result_define"
	DirDefineMacro = "result_define_macro"
	DirTable       = "result_table"
	DirMagic       = "result_magic_number"
	DirStruct      = "result_struct"
	DirCall        = "result_call"
	DirStructValue = "result_struct_value"
	DirSwitch      = "switch_analysis"
)

// Writer places result files under a single output root.
type Writer struct {
	root string
}

// NewWriter creates a Writer rooted at outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{root: outDir}
}

// resolve builds the output path for relPath inside the given result tree
// and makes sure its directory exists.
func (w *Writer) resolve(tree, relPath string) (string, error) {
	path := filepath.Join(w.root, tree, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return path, nil
}

// WriteStripped writes the comment-stripped source to result_comment.
// Runs of three or more blank lines collapse to one; this is a property of
// the written file only, the in-memory stripped text keeps its line count.
func (w *Writer) WriteStripped(relPath, stripped string) error {
	path, err := w.resolve(DirComment, relPath)
	if err != nil {
		return err
	}
	return writeFile(path, collapseBlankRuns(stripped))
}

// WriteDefines writes simple definitions to result_define.
func (w *Writer) WriteDefines(relPath string, defines []extract.Define) error {
	return w.writeDefineTree(DirDefine, "defines", relPath, defines)
}

// WriteMacros writes function-like macros to result_define_macro.
func (w *Writer) WriteMacros(relPath string, macros []extract.Define) error {
	return w.writeDefineTree(DirDefineMacro, "macros", relPath, macros)
}

func (w *Writer) writeDefineTree(tree, kind, relPath string, defines []extract.Define) error {
	path, err := w.resolve(tree, relPath)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s extracted from %s\n", kind, relPath)
	for _, d := range defines {
		b.WriteString("\n")
		b.WriteString(d.Text)
		b.WriteString("\n")
	}
	return writeFile(path, b.String())
}

// WriteTables writes table declarations to result_table.
func (w *Writer) WriteTables(relPath string, tables []extract.TableDecl) error {
	path, err := w.resolve(DirTable, relPath)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// tables extracted from %s\n", relPath)
	for _, t := range tables {
		fmt.Fprintf(&b, "\n// line %d\n%s\n", t.Line, t.Text)
	}
	return writeFile(path, b.String())
}

// WriteCaseVariants expands the stripped source once per case assignment and
// writes each variant as sw_case_NN_<stem><ext> next to the file's mirrored
// path under switch_analysis.
func (w *Writer) WriteCaseVariants(relPath, stripped string, cases []preproc.CaseAssignment) error {
	lines := strings.Split(stripped, "\n")
	dir := filepath.Dir(relPath)
	base := filepath.Base(relPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for _, c := range cases {
		name := fmt.Sprintf("sw_case_%02d_%s%s", c.Number, stem, ext)
		rel := filepath.ToSlash(filepath.Join(dir, name))
		path, err := w.resolve(DirSwitch, rel)
		if err != nil {
			return err
		}

		expanded := preproc.Expand(lines, c.Assignment)
		if err := writeFile(path, strings.Join(expanded, "\n")); err != nil {
			return err
		}
	}
	return nil
}

// collapseBlankRuns reduces every run of three or more blank lines to a
// single blank line.
func collapseBlankRuns(s string) string {
	lines := strings.Split(s, "\n")

	var out []string
	blanks := 0
	flush := func() {
		if blanks == 0 {
			return
		}
		n := blanks
		if n >= 3 {
			n = 1
		}
		for i := 0; i < n; i++ {
			out = append(out, "")
		}
		blanks = 0
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
