package extract

import (
	"regexp"
	"strings"
)

var (
	reDefineStart = regexp.MustCompile(`^\s*#define\s+`)
	reDefineName  = regexp.MustCompile(`^\s*#define\s+([A-Za-z_][A-Za-z0-9_]*)`)
	reMacroName   = regexp.MustCompile(`^\s*#define\s+([A-Za-z_][A-Za-z0-9_]*)\(`)
)

// ExtractDefines scans stripped source text line by line and returns simple
// definitions and function-like macros as two separate sequences, each in
// file order. A definition whose line ends with a backslash continues on the
// following lines until a non-continued line is reached.
func ExtractDefines(stripped string) (definitions, macros []Define) {
	lines := strings.Split(stripped, "\n")

	for i := 0; i < len(lines); i++ {
		if !reDefineStart.MatchString(lines[i]) {
			continue
		}
		startLine := i + 1
		block := []string{lines[i]}
		for strings.HasSuffix(strings.TrimRight(lines[i], " \t"), `\`) && i+1 < len(lines) {
			i++
			block = append(block, lines[i])
		}

		text := normalizeDefine(block)
		name := ""
		if m := reDefineName.FindStringSubmatch(text); m != nil {
			name = m[1]
		}

		d := Define{Name: name, Text: text, Line: startLine, IsMacro: reMacroName.MatchString(text)}
		if d.IsMacro {
			macros = append(macros, d)
		} else {
			definitions = append(definitions, d)
		}
	}

	return definitions, macros
}

// normalizeDefine joins continuation lines: trailing backslashes are
// stripped, continuation lines are re-indented to a fixed four-space indent,
// and intermediate lines keep a " \" joiner so the result is still a valid
// multi-line define.
func normalizeDefine(block []string) string {
	trimmed := make([]string, len(block))
	for i, line := range block {
		line = strings.TrimRight(line, " \t")
		line = strings.TrimSuffix(line, `\`)
		trimmed[i] = strings.TrimRight(line, " \t")
	}

	if len(trimmed) == 1 {
		return trimmed[0]
	}

	var b strings.Builder
	b.WriteString(trimmed[0])
	b.WriteString(" \\\n")
	for i := 1; i < len(trimmed); i++ {
		b.WriteString("    ")
		b.WriteString(strings.TrimSpace(trimmed[i]))
		if i < len(trimmed)-1 {
			b.WriteString(" \\\n")
		}
	}
	return b.String()
}
