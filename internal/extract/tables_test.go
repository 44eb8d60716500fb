package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - Single-line and multi-line initialized arrays are captured whole
// - Function declarations, function definitions, and typedefs are rejected
// - The trailing semicolon on a later line is included
// - Braces inside string literals do not break the balance

func TestExtractTables_SingleLine(t *testing.T) {
	t.Parallel()

	tables := ExtractTables("int numbers[] = {1, 2, 3};\n")

	require.Len(t, tables, 1)
	assert.Equal(t, "numbers", tables[0].Name)
	assert.Equal(t, 1, tables[0].Line)
	assert.Equal(t, "int numbers[] = {1, 2, 3};", tables[0].Text)
}

func TestExtractTables_MultiLine(t *testing.T) {
	t.Parallel()

	src := `const char* fruits[] = {
    "apple",
    "banana",
    "orange"
};
`
	tables := ExtractTables(src)

	require.Len(t, tables, 1)
	assert.Equal(t, "fruits", tables[0].Name)
	assert.Contains(t, tables[0].Text, `"banana",`)
	assert.Contains(t, tables[0].Text, "};")
}

func TestExtractTables_SemicolonOnFollowingLine(t *testing.T) {
	t.Parallel()

	src := "int m[2][2] = {\n    {1, 2},\n    {3, 4}\n}\n;\n"
	tables := ExtractTables(src)

	require.Len(t, tables, 1)
	assert.Equal(t, "m", tables[0].Name)
	assert.Contains(t, tables[0].Text, ";")
}

func TestExtractTables_RejectsFunctions(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractTables("int process_data(int data[], int size);\n"))
	assert.Empty(t, ExtractTables("int sum(int v[]) {\n    return v[0];\n}\n"))
}

func TestExtractTables_RejectsTypedef(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractTables("typedef int fixed_table[16];\n"))
}

func TestExtractTables_RejectsUninitialized(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractTables("extern int lookup[64];\n"))
}

func TestExtractTables_LiteralBracesDoNotSkewBalance(t *testing.T) {
	t.Parallel()

	src := "const char* odd[] = {\n    \"}\",\n    \"{\"\n};\nint after[] = {1};\n"
	tables := ExtractTables(src)

	require.Len(t, tables, 2)
	assert.Equal(t, "odd", tables[0].Name)
	assert.Equal(t, "after", tables[1].Name)
}

func TestExtractTables_StructArray(t *testing.T) {
	t.Parallel()

	src := `struct Point points[] = {
    {0, 0},
    {10, 20}
};
`
	tables := ExtractTables(src)

	require.Len(t, tables, 1)
	assert.Equal(t, "points", tables[0].Name)
}

func TestExtractTables_StringInitializer(t *testing.T) {
	t.Parallel()

	tables := ExtractTables(`char greeting[] = "hello";` + "\n")

	require.Len(t, tables, 1)
	assert.Equal(t, "greeting", tables[0].Name)
}
