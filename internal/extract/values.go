package extract

import (
	"regexp"
	"strings"
)

var (
	// One nesting level of braces inside the initializer is enough for
	// arrays of flat structs; deeper nesting is out of scope.
	reInitializedVar = regexp.MustCompile(`(\w+)\s+(\w+)(\[([^\]]*)\])?\s*=\s*(\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\})\s*;`)
	reSimpleVar      = regexp.MustCompile(`(\w+)\s+(\w+)(\[([^\]]*)\])?\s*;`)
)

// BindStructValues scans stripped text for variable declarations of the
// given struct types and binds initializer values positionally to member
// names. Array-of-struct initializers flatten to one row per element and
// member. Uninitialized declarations yield empty-value rows unless the same
// (struct, variable) pair was already bound with an initializer; that
// suppression uses an explicit pass-local set, keyed by struct and variable
// name.
func BindStructValues(stripped string, structs []StructDecl) []ValueBinding {
	byName := make(map[string][]StructMember, len(structs))
	for _, s := range structs {
		byName[s.Name] = s.Members
	}

	var rows []ValueBinding
	initialized := make(map[string]bool)
	declCounter := make(map[string]int)

	for _, m := range reInitializedVar.FindAllStringSubmatch(stripped, -1) {
		structName, varName, arraySize, init := m[1], m[2], m[4], m[5]
		members, ok := byName[structName]
		if !ok {
			continue
		}

		key := structName + "\x00" + varName
		initialized[key] = true
		declCounter[key]++
		id := declCounter[key]

		if m[3] != "" {
			displayName := varName + "[]"
			for idx, elem := range splitArrayElements(init) {
				values := bindPositional(elem, members)
				for _, member := range members {
					rows = append(rows, ValueBinding{
						StructName:    structName,
						VarName:       displayName,
						MemberName:    member.Name,
						Value:         values[member.Name],
						ArraySize:     arraySize,
						DeclarationID: id,
						ElementIndex:  idx,
					})
				}
			}
		} else {
			values := bindPositional(init, members)
			for _, member := range members {
				rows = append(rows, ValueBinding{
					StructName:    structName,
					VarName:       varName,
					MemberName:    member.Name,
					Value:         values[member.Name],
					DeclarationID: id,
					ElementIndex:  -1,
				})
			}
		}
	}

	for _, m := range reSimpleVar.FindAllStringSubmatch(stripped, -1) {
		structName, varName, arraySize := m[1], m[2], m[4]
		members, ok := byName[structName]
		if !ok {
			continue
		}

		key := structName + "\x00" + varName
		if initialized[key] {
			continue
		}
		declCounter[key]++
		id := declCounter[key]

		displayName := varName
		if m[3] != "" {
			displayName = varName + "[]"
		}
		for _, member := range members {
			rows = append(rows, ValueBinding{
				StructName:    structName,
				VarName:       displayName,
				MemberName:    member.Name,
				ArraySize:     arraySize,
				DeclarationID: id,
				ElementIndex:  -1,
			})
		}
	}

	return rows
}

// bindPositional strips the outer braces of a single-struct initializer and
// assigns comma-separated values (commas inside nested braces do not split)
// to members in declaration order. Missing trailing values bind to "".
func bindPositional(init string, members []StructMember) map[string]string {
	init = strings.TrimSpace(init)
	if strings.HasPrefix(init, "{") && strings.HasSuffix(init, "}") {
		init = strings.TrimSpace(init[1 : len(init)-1])
	}

	var values []string
	depth := 0
	var current strings.Builder
	for _, r := range init {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				values = append(values, strings.TrimSpace(current.String()))
				current.Reset()
				continue
			}
		}
		current.WriteRune(r)
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		values = append(values, s)
	}

	bound := make(map[string]string, len(members))
	for i, member := range members {
		if i < len(values) {
			bound[member.Name] = values[i]
		} else {
			bound[member.Name] = ""
		}
	}
	return bound
}

// splitArrayElements breaks an array initializer into its per-element
// initializers, one string per `{...}` group at the top nesting level.
func splitArrayElements(init string) []string {
	init = strings.TrimSpace(init)
	if strings.HasPrefix(init, "{") && strings.HasSuffix(init, "}") {
		init = strings.TrimSpace(init[1 : len(init)-1])
	}

	var elements []string
	depth := 0
	var current strings.Builder
	for _, r := range init {
		switch r {
		case '{':
			depth++
			current.WriteRune(r)
		case '}':
			depth--
			current.WriteRune(r)
			if depth == 0 {
				elements = append(elements, current.String())
				current.Reset()
			}
		case ',':
			if depth > 0 {
				current.WriteRune(r)
			}
		default:
			if depth > 0 {
				current.WriteRune(r)
			}
		}
	}
	return elements
}
