package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchBrace_Simple(t *testing.T) {
	t.Parallel()

	text := "struct S { int a; };"
	assert.Equal(t, 18, MatchBrace(text, 9))
}

func TestMatchBrace_Nested(t *testing.T) {
	t.Parallel()

	text := "{ { } { { } } }"
	assert.Equal(t, 14, MatchBrace(text, 0))
	assert.Equal(t, 4, MatchBrace(text, 2))
	assert.Equal(t, 12, MatchBrace(text, 6))
}

func TestMatchBrace_NoMatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, MatchBrace("{ { }", 0), "unbalanced input")
	assert.Equal(t, -1, MatchBrace("abc", 0), "offset is not a brace")
	assert.Equal(t, -1, MatchBrace("{}", 5), "offset out of range")
}

func TestMatchBrace_IgnoresMaskedLiterals(t *testing.T) {
	t.Parallel()

	src := `void f() { char *s = "}"; }`
	masked := Mask(src)
	assert.Equal(t, len(src)-1, MatchBrace(masked, 9))
}
