package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - Hex and decimal literals on one line, no identifier substrings
// - Literals inside strings and comments never match
// - Category priority: a float is one occurrence, not three
// - Columns are 1-based, context is the trimmed original line

func TestExtractMagicNumbers_HexAndDecimal(t *testing.T) {
	t.Parallel()

	nums := ExtractMagicNumbers("int x = 0x1A + 10;\n")

	require.Len(t, nums, 2)
	assert.Equal(t, "0x1A", nums[0].Literal)
	assert.Equal(t, 1, nums[0].Line)
	assert.Equal(t, 9, nums[0].Column)
	assert.Equal(t, "10", nums[1].Literal)
	assert.Equal(t, 16, nums[1].Column)
	assert.Equal(t, "int x = 0x1A + 10;", nums[0].Context)
}

func TestExtractMagicNumbers_StringsAndCommentsIgnored(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractMagicNumbers(`const char *s = "abc123";`+"\n"))
	assert.Empty(t, ExtractMagicNumbers("// limit is 42\n/* or 7 */\n"))
}

func TestExtractMagicNumbers_IdentifierBoundary(t *testing.T) {
	t.Parallel()

	nums := ExtractMagicNumbers("int buf2size = value_3 + rate2x;\n")
	assert.Empty(t, nums, "digits inside identifiers are not literals")
}

func TestExtractMagicNumbers_FloatIsOneOccurrence(t *testing.T) {
	t.Parallel()

	nums := ExtractMagicNumbers("double pi = 3.14159;\n")
	require.Len(t, nums, 1)
	assert.Equal(t, "3.14159", nums[0].Literal)
}

func TestExtractMagicNumbers_Categories(t *testing.T) {
	t.Parallel()

	src := "a = 0b1010; b = 0755; c = 1.5e-3; d = .5f; e = 0;\n"
	nums := ExtractMagicNumbers(src)

	require.Len(t, nums, 5)
	assert.Equal(t, "0b1010", nums[0].Literal)
	assert.Equal(t, "0755", nums[1].Literal)
	assert.Equal(t, "1.5e-3", nums[2].Literal)
	assert.Equal(t, ".5f", nums[3].Literal)
	assert.Equal(t, "0", nums[4].Literal)
}

func TestExtractMagicNumbers_SuffixedLiterals(t *testing.T) {
	t.Parallel()

	nums := ExtractMagicNumbers("x = 100UL; y = 0xFFu;\n")
	require.Len(t, nums, 2)
	assert.Equal(t, "100UL", nums[0].Literal)
	assert.Equal(t, "0xFFu", nums[1].Literal)
}

func TestExtractMagicNumbers_SourceOrder(t *testing.T) {
	t.Parallel()

	nums := ExtractMagicNumbers("f(10, 0x2, 30);\n")
	require.Len(t, nums, 3)
	assert.Equal(t, "10", nums[0].Literal)
	assert.Equal(t, "0x2", nums[1].Literal)
	assert.Equal(t, "30", nums[2].Literal)
}
