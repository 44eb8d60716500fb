package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/csift/csift/internal/lex"
)

// numberPatterns is ordered by priority: where two categories could match
// overlapping text, the earlier pattern wins and the consumed region is
// blanked before later patterns run.
var numberPatterns = []*regexp.Regexp{
	// Hexadecimal
	regexp.MustCompile(`\b0[xX][0-9a-fA-F]+[uUlL]*\b`),
	// Binary (C23 / GCC extension)
	regexp.MustCompile(`\b0[bB][01]+[uUlL]*\b`),
	// Octal
	regexp.MustCompile(`\b0[0-7]+[uUlL]*\b`),
	// Float with exponent
	regexp.MustCompile(`\b\d+\.?\d*[eE][+-]?\d+[fFlL]?\b`),
	regexp.MustCompile(`\.\d+[eE][+-]?\d+[fFlL]?\b`),
	// Float without exponent: digits.digits, digits., .digits
	regexp.MustCompile(`\b\d+\.\d+[fFlL]?\b`),
	regexp.MustCompile(`\b\d+\.[fFlL]?`),
	regexp.MustCompile(`\.\d+[fFlL]?\b`),
	// Decimal integer
	regexp.MustCompile(`\b[1-9]\d*[uUlL]*\b`),
	// Bare zero
	regexp.MustCompile(`\b0[uUlL]*\b`),
}

// ExtractMagicNumbers scans raw source text for numeric literals appearing in
// code. Comments and string/char literals are masked to spaces first so that
// offsets stay aligned with the original lines. A candidate is rejected when
// the adjacent character is alphanumeric or an underscore, which keeps
// matches out of identifiers and longer tokens.
func ExtractMagicNumbers(src string) []MagicNumber {
	masked := lex.Mask(src)
	origLines := strings.Split(src, "\n")
	maskedLines := strings.Split(masked, "\n")

	var found []MagicNumber
	for i, line := range maskedLines {
		work := []byte(line)
		for _, pat := range numberPatterns {
			for _, loc := range pat.FindAllIndex(work, -1) {
				start, end := loc[0], loc[1]
				if start > 0 && isIdentChar(line[start-1]) {
					continue
				}
				if end < len(line) && isIdentChar(line[end]) {
					continue
				}
				found = append(found, MagicNumber{
					Line:    i + 1,
					Column:  start + 1,
					Literal: string(work[start:end]),
					Context: strings.TrimSpace(origLines[i]),
				})
				// Consume the match so lower-priority patterns cannot
				// re-match inside it.
				for j := start; j < end; j++ {
					work[j] = ' '
				}
			}
		}
	}

	// Patterns run one at a time, so occurrences of different categories on
	// one line come out grouped by pattern. Re-sort into source order.
	sort.Slice(found, func(a, b int) bool {
		if found[a].Line != found[b].Line {
			return found[a].Line < found[b].Line
		}
		return found[a].Column < found[b].Column
	})
	return found
}

func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
