package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// BlameEntry holds parsed git blame data for a single line.
type BlameEntry struct {
	SHA      string // 40-char commit SHA
	Line     int    // 1-based line number in current file
	OrigLine int    // 1-based line number in the original commit
}

// BlameFile runs git blame on file as of ref and returns entries keyed by
// 1-based line number. It is used to cross-check forward blame results.
func BlameFile(root, ref, file string) (map[int]BlameEntry, error) {
	cmd := exec.Command("git", "blame", "--porcelain", "--first-parent", ref, "--", file)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git blame %s: %w", file, err)
	}
	return parsePorcelainBlame(out), nil
}

// parsePorcelainBlame parses git blame --porcelain output.
//
// Porcelain format:
//
//	<40-byte SHA> <orig-line> <final-line> [<num-lines>]
//	header lines...
//	\t<actual line content>
//
// The first line for each blame group starts with the SHA.
// Subsequent lines in the same group reuse the SHA.
func parsePorcelainBlame(out []byte) map[int]BlameEntry {
	entries := make(map[int]BlameEntry)

	for _, line := range strings.Split(string(out), "\n") {
		if line == "" || strings.HasPrefix(line, "\t") {
			continue
		}

		// SHA line: <40-char sha> <orig-line> <final-line> [<num-lines>]
		// Header lines (author, summary, ...) never have a 40-char first field.
		fields := strings.Fields(line)
		if len(fields) < 3 || len(fields[0]) != 40 {
			continue
		}
		var origLine, finalLine int
		_, _ = fmt.Sscanf(fields[1], "%d", &origLine)
		_, _ = fmt.Sscanf(fields[2], "%d", &finalLine)
		if finalLine > 0 {
			entries[finalLine] = BlameEntry{
				SHA:      fields[0],
				Line:     finalLine,
				OrigLine: origLine,
			}
		}
	}

	return entries
}
