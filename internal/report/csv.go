package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/csift/csift/internal/extract"
	"github.com/csift/csift/internal/preproc"
)

// csvPath derives the output file name for one fact kind: the mirrored
// relative path with the extension replaced by _<suffix>.csv.
func (w *Writer) csvPath(tree, relPath, suffix string) (string, error) {
	ext := filepath.Ext(relPath)
	rel := strings.TrimSuffix(relPath, ext) + "_" + suffix + ".csv"
	return w.resolve(tree, rel)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSwitchLines writes the discovered conditional directives.
func (w *Writer) WriteSwitchLines(relPath string, switches []preproc.SwitchLine) error {
	path, err := w.csvPath(DirSwitch, relPath, "switch_lines")
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(switches))
	for _, s := range switches {
		rows = append(rows, []string{
			strconv.Itoa(s.LineNumber), s.Content, s.SwitchName, string(s.SwitchType),
		})
	}
	return writeCSV(path, []string{"line_number", "line_content", "switch_name", "switch_type"}, rows)
}

// WriteCaseTable writes the case enumeration, one column per sorted macro.
func (w *Writer) WriteCaseTable(relPath string, names []string, cases []preproc.CaseAssignment) error {
	path, err := w.csvPath(DirSwitch, relPath, "switch_cases")
	if err != nil {
		return err
	}

	header := append([]string{"case_no", "case_name"}, names...)
	rows := make([][]string, 0, len(cases))
	for _, c := range cases {
		row := []string{strconv.Itoa(c.Number), c.Label}
		for _, name := range names {
			row = append(row, strconv.FormatBool(c.Assignment[name]))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, header, rows)
}

// WriteMagicNumbers writes the numeric literal hits.
func (w *Writer) WriteMagicNumbers(relPath string, numbers []extract.MagicNumber) error {
	path, err := w.csvPath(DirMagic, relPath, "magic_number")
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(numbers))
	for _, n := range numbers {
		rows = append(rows, []string{
			strconv.Itoa(n.Line), strconv.Itoa(n.Column), n.Literal, n.Context,
		})
	}
	return writeCSV(path, []string{"line", "column", "number", "context"}, rows)
}

// WriteStructs writes struct declarations, one row per member.
func (w *Writer) WriteStructs(relPath string, structs []extract.StructDecl) error {
	path, err := w.csvPath(DirStruct, relPath, "struct")
	if err != nil {
		return err
	}

	var rows [][]string
	for _, s := range structs {
		for i, m := range s.Members {
			rows = append(rows, []string{
				relPath, s.Name, s.Tag, strconv.Itoa(i + 1), m.Type, m.Name,
			})
		}
	}
	return writeCSV(path,
		[]string{"file_path", "struct_name", "tag_name", "member_number", "member_type", "member_name"},
		rows)
}

// WriteCalls writes call edges in call-site order.
func (w *Writer) WriteCalls(relPath string, edges []extract.CallEdge) error {
	path, err := w.csvPath(DirCall, relPath, "call")
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{e.Caller, e.Callee})
	}
	return writeCSV(path, []string{"caller", "callee"}, rows)
}

// WriteValues writes struct variable value bindings.
func (w *Writer) WriteValues(relPath string, values []extract.ValueBinding) error {
	path, err := w.csvPath(DirStructValue, relPath, "struct_value")
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{
			v.StructName, v.VarName, v.MemberName, v.Value, v.ArraySize,
		})
	}
	return writeCSV(path,
		[]string{"struct_name", "var_name", "member_name", "init_value", "array_size"},
		rows)
}
