package extract

import (
	"regexp"

	"github.com/csift/csift/internal/lex"
)

var (
	reFunctionHead = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*\s+)*([a-zA-Z_][a-zA-Z0-9_]*)\s*\([^)]*\)\s*\{`)
	reCallSite     = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)
)

// controlKeywords are identifiers that look like calls but are C control
// flow or operators.
var controlKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "default": true, "return": true,
	"break": true, "continue": true, "goto": true, "sizeof": true,
	"typeof": true, "static_assert": true, "_Static_assert": true,
}

// ExtractCalls builds the function call edges of a file. Function
// definitions are recognized by a `(return-type tokens)? name(params) {`
// head on the masked view; the body is the brace-balanced span from the
// opening brace. Every `identifier(` inside the body that is not a control
// keyword yields one edge per call site; repeated calls are not
// deduplicated and self-recursion is kept. Calls through function pointers
// or macros are not resolved.
func ExtractCalls(stripped string) []CallEdge {
	masked := lex.Mask(stripped)

	var edges []CallEdge
	for _, m := range reFunctionHead.FindAllStringSubmatchIndex(masked, -1) {
		caller := masked[m[4]:m[5]]
		if controlKeywords[caller] {
			// `while (x) {` and friends match the head shape too.
			continue
		}

		open := m[1] - 1
		end := lex.MatchBrace(masked, open)
		if end < 0 {
			continue
		}
		body := masked[open : end+1]

		for _, c := range reCallSite.FindAllStringSubmatch(body, -1) {
			if controlKeywords[c[1]] {
				continue
			}
			edges = append(edges, CallEdge{Caller: caller, Callee: c[1]})
		}
	}

	return edges
}
