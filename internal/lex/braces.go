package lex

// MatchBrace returns the offset of the '}' matching the opening '{' at open,
// using a simple depth counter. The input is expected to be stripped text;
// callers that cannot tolerate braces inside string literals should pass the
// masked view instead. Returns -1 when open does not point at a '{' or when
// the text ends before the depth returns to zero.
func MatchBrace(text string, open int) int {
	if open < 0 || open >= len(text) || text[open] != '{' {
		return -1
	}
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
