package scan

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding names recorded alongside decoded files.
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift-jis"
)

// ReadSource reads a source file and decodes it to UTF-8. Files that are not
// valid UTF-8 are retried as Shift JIS (CP932), the usual legacy encoding of
// the firmware trees this tool targets. Line endings are normalized to LF.
func ReadSource(path string) (content string, encoding string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if utf8.Valid(raw) {
		return normalizeNewlines(string(raw)), EncodingUTF8, nil
	}

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode %s as shift-jis: %w", path, err)
	}
	return normalizeNewlines(string(decoded)), EncodingShiftJIS, nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
