package capture

import "strings"

const separator = "_"

// DirName derives a capture directory name from a request line: the query
// segment is stripped, path separators, brackets and spaces each become the
// separator, runs collapse to one, and trailing separators are trimmed.
// Identical request lines always sanitize to identical names.
func DirName(requestLine string) string {
	line := stripQuery(requestLine)
	var b strings.Builder
	lastSep := false
	for _, r := range line {
		switch r {
		case '/', '\\', '[', ']', ' ':
			if !lastSep {
				b.WriteString(separator)
				lastSep = true
			}
		default:
			b.WriteRune(r)
			lastSep = false
		}
	}
	return strings.TrimRight(b.String(), separator)
}

// stripQuery removes the ?query portion of the request-line path token.
func stripQuery(line string) string {
	i := strings.Index(line, "?")
	if i < 0 {
		return line
	}
	j := strings.IndexByte(line[i:], ' ')
	if j < 0 {
		return line[:i]
	}
	return line[:i] + line[i+j:]
}

// sanitizeKey strips a parameter key down to alphanumerics for use in an
// overflow file name.
func sanitizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
