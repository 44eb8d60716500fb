package extract

import (
	"regexp"
	"strings"

	"github.com/csift/csift/internal/lex"
)

var tableStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:static\s+|const\s+|extern\s+)*(?:unsigned\s+)?(?:char|short|int|long|float|double|void\s*\*|\w+_t|\w+)\s*\*?\s+\w+\s*\[`),
	regexp.MustCompile(`^\s*(?:static\s+|const\s+|extern\s+)*struct\s+\w+\s+\w+\s*\[`),
	regexp.MustCompile(`^\s*(?:static\s+|const\s+|extern\s+)*\w+\s+\w+\s*\[.*\]\s*=`),
}

var (
	reFunctionShape = regexp.MustCompile(`\w+\s*\([^)]*\)\s*(?:\{|;)`)
	reFunctionDef   = regexp.MustCompile(`\w+\s*\([^)]*\)\s*\{`)
	reTableName     = regexp.MustCompile(`(\w+)\s*\[`)
)

// ExtractTables captures initialized array declarations from stripped text.
// A declaration starts on a line matching one of the array-declaration
// shapes, accumulates lines until its initializer braces balance, then
// continues to the terminating semicolon. Brace counting runs on the masked
// view so braces inside string literals do not skew the balance. Function
// declarations, function definitions, and typedefs are rejected.
func ExtractTables(stripped string) []TableDecl {
	lines := strings.Split(stripped, "\n")
	maskedLines := strings.Split(lex.Mask(stripped), "\n")

	var tables []TableDecl
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !isTableStart(line) {
			continue
		}
		startLine := i + 1

		if strings.Contains(maskedLines[i], "{") {
			block := []string{lines[i]}
			depth := strings.Count(maskedLines[i], "{") - strings.Count(maskedLines[i], "}")
			j := i + 1
			for j < len(lines) && depth > 0 {
				block = append(block, lines[j])
				depth += strings.Count(maskedLines[j], "{") - strings.Count(maskedLines[j], "}")
				j++
			}
			if depth == 0 && !strings.HasSuffix(strings.TrimSpace(block[len(block)-1]), ";") {
				for j < len(lines) {
					block = append(block, lines[j])
					done := strings.HasSuffix(strings.TrimSpace(lines[j]), ";")
					j++
					if done {
						break
					}
				}
			}
			i = j - 1

			text := strings.TrimSpace(strings.Join(block, "\n"))
			if depth == 0 && isValidTable(text) {
				tables = append(tables, TableDecl{Name: tableName(line), Line: startLine, Text: text})
			}
		} else if strings.Contains(line, ";") && isValidTable(line) {
			tables = append(tables, TableDecl{Name: tableName(line), Line: startLine, Text: line})
		}
	}

	return tables
}

func isTableStart(line string) bool {
	for _, pat := range tableStartPatterns {
		if pat.MatchString(line) {
			if reFunctionShape.MatchString(line) {
				return false
			}
			return true
		}
	}
	return false
}

// isValidTable requires an array bracket pair plus an initializer (braces or
// a quoted literal) and rejects function definitions and typedefs.
func isValidTable(decl string) bool {
	if strings.TrimSpace(decl) == "" {
		return false
	}
	hasBracket := strings.Contains(decl, "[") && strings.Contains(decl, "]")
	hasInit := strings.Contains(decl, "=") &&
		(strings.Contains(decl, "{") || strings.Contains(decl, `"`) || strings.Contains(decl, "'"))
	isFunction := reFunctionDef.MatchString(decl)
	isTypedef := strings.HasPrefix(strings.TrimSpace(decl), "typedef")

	return hasBracket && hasInit && !isFunction && !isTypedef
}

func tableName(line string) string {
	if m := reTableName.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}
