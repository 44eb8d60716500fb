// Package lex implements the lexical segmentation pass shared by every
// extractor: classifying comment and literal spans in raw C/C++ source text
// and producing comment-free (or fully masked) views of it without disturbing
// line numbering.
package lex

import "strings"

// SpanKind classifies a region recognized by the scanner.
type SpanKind int

const (
	DoubleQuotedString SpanKind = iota
	SingleQuotedChar
	LineComment
	BlockComment
)

// Span is a half-open byte range in the original text, tagged with the kind
// of region it covers. Line and Column are 1-based and refer to the start of
// the span.
type Span struct {
	Kind   SpanKind
	Start  int
	End    int
	Line   int
	Column int
}

// ScanSpans performs a single left-to-right scan over src and returns every
// string literal, char literal, line comment, and block comment span, in
// source order. Spans never overlap. An unterminated literal or comment
// extends to the end of input.
func ScanSpans(src string) []Span {
	var spans []Span
	line, col := 1, 1
	i := 0
	n := len(src)

	advance := func(from, to int) {
		for j := from; j < to; j++ {
			if src[j] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}

	for i < n {
		c := src[i]
		switch {
		case c == '"' || c == '\'':
			quote := c
			start, startLine, startCol := i, line, col
			j := i + 1
			for j < n {
				if src[j] == '\\' && j+1 < n {
					// Escaped pair, never terminates the literal.
					j += 2
					continue
				}
				if src[j] == quote {
					j++
					break
				}
				j++
			}
			kind := DoubleQuotedString
			if quote == '\'' {
				kind = SingleQuotedChar
			}
			spans = append(spans, Span{Kind: kind, Start: start, End: j, Line: startLine, Column: startCol})
			advance(i, j)
			i = j

		case c == '/' && i+1 < n && src[i+1] == '/':
			start, startLine, startCol := i, line, col
			j := i + 2
			for j < n && src[j] != '\n' {
				j++
			}
			// The newline itself is not part of the comment.
			spans = append(spans, Span{Kind: LineComment, Start: start, End: j, Line: startLine, Column: startCol})
			advance(i, j)
			i = j

		case c == '/' && i+1 < n && src[i+1] == '*':
			start, startLine, startCol := i, line, col
			end := strings.Index(src[i+2:], "*/")
			var j int
			if end < 0 {
				j = n
			} else {
				j = i + 2 + end + 2
			}
			spans = append(spans, Span{Kind: BlockComment, Start: start, End: j, Line: startLine, Column: startCol})
			advance(i, j)
			i = j

		default:
			advance(i, i+1)
			i++
		}
	}

	return spans
}

// Strip removes comments from src while preserving the content of string and
// char literals and the total line count. Line comments vanish entirely (the
// trailing newline is kept because it was never part of the comment); a block
// comment is replaced by one newline per line it spanned, so everything after
// it keeps its original line number.
func Strip(src string) string {
	spans := ScanSpans(src)
	var b strings.Builder
	b.Grow(len(src))
	prev := 0
	for _, sp := range spans {
		b.WriteString(src[prev:sp.Start])
		switch sp.Kind {
		case DoubleQuotedString, SingleQuotedChar:
			b.WriteString(src[sp.Start:sp.End])
		case LineComment:
			// Dropped.
		case BlockComment:
			b.WriteString(strings.Repeat("\n", strings.Count(src[sp.Start:sp.End], "\n")))
		}
		prev = sp.End
	}
	b.WriteString(src[prev:])
	return b.String()
}

// Mask blanks both comments and literals to spaces of identical width,
// keeping newlines, so byte offsets, line numbers, and column numbers of the
// surrounding code are unchanged. Extractors that must not see braces,
// parentheses, or digits inside literals operate on the masked view.
func Mask(src string) string {
	spans := ScanSpans(src)
	buf := []byte(src)
	for _, sp := range spans {
		for j := sp.Start; j < sp.End; j++ {
			if buf[j] != '\n' {
				buf[j] = ' '
			}
		}
	}
	return string(buf)
}
