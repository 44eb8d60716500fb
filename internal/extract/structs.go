package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/csift/csift/internal/lex"
)

var (
	reTypedefStructHead = regexp.MustCompile(`typedef\s+struct\s*(\w+)?\s*\{`)
	reStructHead        = regexp.MustCompile(`struct\s+(\w+)\s*\{`)
	reTypedefTrailer    = regexp.MustCompile(`^\s*(\w+)\s*;`)
	reStructTrailer     = regexp.MustCompile(`^\s*;`)
	reWhitespaceRun     = regexp.MustCompile(`\s+`)

	reMember = regexp.MustCompile(
		`((?:const\s+)?(?:unsigned\s+|signed\s+)?(?:struct\s+)?(?:enum\s+)?\w+(?:\s*\*)*)\s+` +
			`(\w+)(?:\[([^\]]*)\])?\s*(?::\s*(\d+))?\s*;`)
)

// ExtractStructs finds `typedef struct TAG? { ... } Alias;` and
// `struct Name { ... };` declarations in stripped text. Bodies are bounded by
// brace matching on the masked view, so nested braces and literal-embedded
// braces cannot derail the boundary. Members of a nested anonymous struct or
// union are reported flat alongside the outer members; the nested aggregate
// is not recursed into as its own declaration.
func ExtractStructs(stripped string) []StructDecl {
	masked := lex.Mask(stripped)
	var decls []StructDecl

	for _, m := range reTypedefStructHead.FindAllStringSubmatchIndex(masked, -1) {
		open := m[1] - 1
		end := lex.MatchBrace(masked, open)
		if end < 0 {
			continue
		}
		tm := reTypedefTrailer.FindStringSubmatch(masked[end+1:])
		if tm == nil {
			continue
		}
		tag := ""
		if m[2] >= 0 {
			tag = masked[m[2]:m[3]]
		}
		decls = append(decls, StructDecl{
			Name:    tm[1],
			Tag:     tag,
			Line:    lineAt(masked, m[0]),
			Members: parseMembers(stripped[open+1 : end]),
		})
	}

	for _, m := range reStructHead.FindAllStringSubmatchIndex(masked, -1) {
		if precededByTypedef(masked, m[0]) {
			continue
		}
		open := m[1] - 1
		end := lex.MatchBrace(masked, open)
		if end < 0 {
			continue
		}
		if !reStructTrailer.MatchString(masked[end+1:]) {
			continue
		}
		name := masked[m[2]:m[3]]
		decls = append(decls, StructDecl{
			Name:    name,
			Tag:     name,
			Line:    lineAt(masked, m[0]),
			Members: parseMembers(stripped[open+1 : end]),
		})
	}

	sort.SliceStable(decls, func(i, j int) bool { return decls[i].Line < decls[j].Line })
	return decls
}

// parseMembers collapses whitespace in a struct body and matches member
// declarations. Array suffixes and bit-field widths are folded into the type
// text, preserving the tabular shape downstream consumers bind values to.
func parseMembers(body string) []StructMember {
	body = reWhitespaceRun.ReplaceAllString(strings.TrimSpace(body), " ")

	var members []StructMember
	for _, m := range reMember.FindAllStringSubmatch(body, -1) {
		typ := strings.TrimSpace(m[1])
		if strings.Contains(m[0], "[") {
			typ += "[" + m[3] + "]"
		}
		if m[4] != "" {
			typ += " : " + m[4]
		}
		members = append(members, StructMember{Type: typ, Name: m[2]})
	}
	return members
}

// precededByTypedef reports whether the token before offset is "typedef",
// which means this struct head already belongs to a typedef match.
func precededByTypedef(text string, offset int) bool {
	j := offset
	for j > 0 && (text[j-1] == ' ' || text[j-1] == '\t' || text[j-1] == '\n' || text[j-1] == '\r') {
		j--
	}
	return j >= len("typedef") && text[j-len("typedef"):j] == "typedef"
}

func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
