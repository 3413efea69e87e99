package extract

import "strings"

// FindObject returns the first balanced {...} span of text. Braces inside
// JSON string literals do not count, so prose before or after the object
// and code fences around it are ignored.
func FindObject(text string) (string, bool) {
	span, _, ok := nextObject(text, 0)
	return span, ok
}

// nextObject scans from the first '{' at or after from. next is where the
// following candidate search should start.
func nextObject(text string, from int) (span string, next int, ok bool) {
	rel := strings.IndexByte(text[from:], '{')
	if rel < 0 {
		return "", len(text), false
	}
	start := from + rel

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], start + 1, true
			}
		}
	}
	return "", len(text), false
}
