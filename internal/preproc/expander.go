package preproc

import (
	"regexp"
	"strings"
)

var (
	reIfdef          = regexp.MustCompile(`^#ifdef\s+(\w+)`)
	reIfndef         = regexp.MustCompile(`^#ifndef\s+(\w+)`)
	reIfDefined      = regexp.MustCompile(`^#if\s+defined\s*\(\s*(\w+)\s*\)`)
	reIfNotDefined   = regexp.MustCompile(`^#if\s+!defined\s*\(\s*(\w+)\s*\)`)
	reElifDefined    = regexp.MustCompile(`^#elif\s+defined\s*\(\s*(\w+)\s*\)`)
	reElifNotDefined = regexp.MustCompile(`^#elif\s+!defined\s*\(\s*(\w+)\s*\)`)
)

// frame is one open #if-family block. taken is the evaluated condition of the
// branch currently in effect; anyTaken is true once any branch of the
// if/elif/else chain has evaluated true, so at most one branch of a chain can
// ever be active.
type frame struct {
	taken    bool
	anyTaken bool
}

// Expand re-scans lines and returns the ones that survive preprocessing under
// the given assignment. A line is visible iff every enclosing conditional
// frame currently evaluates true. Recognized directive lines are consumed,
// never emitted; #if forms the scanner does not understand (arithmetic
// expressions and the like) pass through as ordinary lines. A stray #endif or
// frames left open at end of input degrade silently.
func Expand(lines []string, assignment map[string]bool) []string {
	var out []string
	var stack []frame

	visible := func() bool {
		for _, f := range stack {
			if !f.taken {
				return false
			}
		}
		return true
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		switch {
		case matchName(reIfdef, line) != "" || matchName(reIfDefined, line) != "":
			name := matchName(reIfdef, line)
			if name == "" {
				name = matchName(reIfDefined, line)
			}
			cond := assignment[name]
			stack = append(stack, frame{taken: cond, anyTaken: cond})

		case matchName(reIfndef, line) != "" || matchName(reIfNotDefined, line) != "":
			name := matchName(reIfndef, line)
			if name == "" {
				name = matchName(reIfNotDefined, line)
			}
			cond := !assignment[name]
			stack = append(stack, frame{taken: cond, anyTaken: cond})

		case strings.HasPrefix(line, "#elif"):
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				cond := false
				if !top.anyTaken {
					if name := matchName(reElifDefined, line); name != "" {
						cond = assignment[name]
					} else if name := matchName(reElifNotDefined, line); name != "" {
						cond = !assignment[name]
					}
				}
				top.taken = cond
				top.anyTaken = top.anyTaken || cond
			}

		case strings.HasPrefix(line, "#else"):
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				cond := !top.anyTaken
				top.taken = cond
				top.anyTaken = top.anyTaken || cond
			}

		case strings.HasPrefix(line, "#endif"):
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		default:
			if visible() {
				out = append(out, raw)
			}
		}
	}

	return out
}

func matchName(pat *regexp.Regexp, line string) string {
	m := pat.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}
