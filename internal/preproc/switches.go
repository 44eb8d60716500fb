// Package preproc analyzes the conditional-compilation structure of C/C++
// source text: it discovers the switch macros gating #if-family blocks,
// enumerates every boolean assignment over them, and materializes the code
// variant each assignment would compile.
package preproc

import (
	"regexp"
	"sort"
	"strings"
)

// SwitchKind tells whether a directive tests for the macro being defined or
// not defined.
type SwitchKind string

const (
	SwitchIfdef  SwitchKind = "ifdef"
	SwitchIfndef SwitchKind = "ifndef"
)

// SwitchLine records one conditional directive that references a switch
// macro, in file order.
type SwitchLine struct {
	LineNumber int
	Content    string
	SwitchName string
	SwitchType SwitchKind
}

var switchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`#ifdef\s+(\w+)`),
	regexp.MustCompile(`#ifndef\s+(\w+)`),
	regexp.MustCompile(`#if\s+defined\s*\(\s*(\w+)\s*\)`),
	regexp.MustCompile(`#if\s+!defined\s*\(\s*(\w+)\s*\)`),
	regexp.MustCompile(`#elif\s+defined\s*\(\s*(\w+)\s*\)`),
	regexp.MustCompile(`#elif\s+!defined\s*\(\s*(\w+)\s*\)`),
}

// DiscoverSwitches scans lines for conditional directives and returns each
// hit together with the deduplicated, lexicographically sorted set of switch
// macro names. Sorting makes the case numbering of Enumerate deterministic
// regardless of discovery order.
func DiscoverSwitches(lines []string) ([]SwitchLine, []string) {
	var hits []SwitchLine
	seen := make(map[string]bool)

	for num, raw := range lines {
		line := strings.TrimSpace(raw)
		for _, pat := range switchPatterns {
			m := pat.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := m[1]
			seen[name] = true

			kind := SwitchIfdef
			if strings.Contains(line, "#ifndef") || strings.Contains(line, "!defined") {
				kind = SwitchIfndef
			}
			hits = append(hits, SwitchLine{
				LineNumber: num + 1,
				Content:    line,
				SwitchName: name,
				SwitchType: kind,
			})
			break
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return hits, names
}
