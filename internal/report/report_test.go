package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csift/csift/internal/extract"
	"github.com/csift/csift/internal/preproc"
)

// Test Plan:
// - Output trees mirror the source's relative path
// - Stripped output collapses runs of three or more blank lines
// - Case variants are named sw_case_NN_<stem><ext>
// - CSV files carry the expected headers and rows

func readOut(t *testing.T, root string, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{root}, parts...)...))
	require.NoError(t, err)
	return string(data)
}

func TestWriter_StrippedMirrorsPathAndCollapsesBlanks(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out)

	stripped := "int a;\n\n\n\n\nint b;\n\nint c;\n"
	require.NoError(t, w.WriteStripped("src/core/main.c", stripped))

	got := readOut(t, out, DirComment, "src", "core", "main.c")
	assert.Equal(t, "int a;\n\nint b;\n\nint c;\n", got)
}

func TestWriter_DefinesHeader(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out)

	defines := []extract.Define{
		{Name: "LIMIT", Text: "#define LIMIT 10", Line: 3},
	}
	require.NoError(t, w.WriteDefines("main.c", defines))

	got := readOut(t, out, DirDefine, "main.c")
	assert.Contains(t, got, "// defines extracted from main.c")
	assert.Contains(t, got, "#define LIMIT 10")
}

func TestWriter_CaseVariantNames(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out)

	stripped := "#ifdef DEBUG\nint trace;\n#endif\nint x;"
	cases := []preproc.CaseAssignment{
		{Number: 1, Label: "Case_01", Assignment: map[string]bool{"DEBUG": true}},
		{Number: 2, Label: "Case_02", Assignment: map[string]bool{"DEBUG": false}},
	}
	require.NoError(t, w.WriteCaseVariants("src/main.c", stripped, cases))

	on := readOut(t, out, DirSwitch, "src", "sw_case_01_main.c")
	assert.Contains(t, on, "int trace;")
	assert.Contains(t, on, "int x;")

	off := readOut(t, out, DirSwitch, "src", "sw_case_02_main.c")
	assert.NotContains(t, off, "int trace;")
	assert.Contains(t, off, "int x;")
}

func TestWriter_CaseTableCSV(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out)

	names := []string{"A", "B"}
	cases := []preproc.CaseAssignment{
		{Number: 1, Label: "Case_01", Assignment: map[string]bool{"A": true, "B": true}},
		{Number: 2, Label: "Case_02", Assignment: map[string]bool{"A": true, "B": false}},
	}
	require.NoError(t, w.WriteCaseTable("main.c", names, cases))

	got := readOut(t, out, DirSwitch, "main_switch_cases.csv")
	assert.Contains(t, got, "case_no,case_name,A,B\n")
	assert.Contains(t, got, "1,Case_01,true,true\n")
	assert.Contains(t, got, "2,Case_02,true,false\n")
}

func TestWriter_MagicCSV(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out)

	numbers := []extract.MagicNumber{
		{Line: 10, Column: 14, Literal: "0x1A", Context: "reg = 0x1A;"},
	}
	require.NoError(t, w.WriteMagicNumbers("drivers/uart.c", numbers))

	got := readOut(t, out, DirMagic, "drivers", "uart_magic_number.csv")
	assert.Contains(t, got, "line,column,number,context\n")
	assert.Contains(t, got, "10,14,0x1A,reg = 0x1A;\n")
}

func TestWriter_StructsCSVOneRowPerMember(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out)

	structs := []extract.StructDecl{
		{Name: "Conf", Line: 5, Members: []extract.StructMember{
			{Type: "int", Name: "id"},
			{Type: "char[32]", Name: "name"},
		}},
	}
	require.NoError(t, w.WriteStructs("conf.h", structs))

	got := readOut(t, out, DirStruct, "conf_struct.csv")
	assert.Contains(t, got, "conf.h,Conf,,1,int,id\n")
	assert.Contains(t, got, "conf.h,Conf,,2,char[32],name\n")
}

func TestWriter_CallsCSVKeepsDuplicates(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriter(out)

	edges := []extract.CallEdge{
		{Caller: "foo", Callee: "bar"},
		{Caller: "foo", Callee: "bar"},
	}
	require.NoError(t, w.WriteCalls("main.c", edges))

	got := readOut(t, out, DirCall, "main_call.csv")
	assert.Equal(t, "caller,callee\nfoo,bar\nfoo,bar\n", got)
}
