package blame

import "strings"

// SplitLines splits content into lines on '\n'.
//
// Lines are substrings of content, so no bytes are copied. A '\r' before
// '\n' stays in the line. Empty content yields no lines, and a single
// trailing '\n' does not produce a trailing empty line: "a\nb\n" splits into
// "a" and "b". Every further trailing '\n' yields one empty line, so
// "a\n\n" splits into "a" and "".
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	n := strings.Count(content, "\n") + 1
	lines := make([]string, 0, n)
	for {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			return append(lines, content)
		}
		lines = append(lines, content[:i])
		content = content[i+1:]
	}
}
