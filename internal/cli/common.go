package cli

import (
	"github.com/csift/csift/internal/lex"
	"github.com/csift/csift/internal/scan"
)

// readStripped decodes one source file and strips its comments.
func readStripped(path string) (string, error) {
	content, _, err := scan.ReadSource(path)
	if err != nil {
		return "", err
	}
	return lex.Strip(content), nil
}
