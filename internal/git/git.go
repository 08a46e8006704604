package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// Author returns the git user.name config value.
func Author() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err != nil {
		return "unknown"
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return "unknown"
	}
	return name
}

// RevParseTopLevel returns the git repo root.
func RevParseTopLevel() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository")
	}
	return strings.TrimSpace(string(out)), nil
}

// Commit is one entry of a file's history.
type Commit struct {
	SHA     string `json:"sha"`
	Author  string `json:"author"`
	Date    string `json:"date"` // ISO 8601 author date
	Subject string `json:"subject"`
}

const fieldSep = "\x1f"

// FileHistory lists the commits that touched file, oldest first, following
// first parents only so the history is linear.
func FileHistory(root, file string) ([]Commit, error) {
	cmd := exec.Command("git", "log", "--first-parent", "--reverse",
		"--format=%H"+fieldSep+"%an"+fieldSep+"%aI"+fieldSep+"%s", "--", file)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w", file, err)
	}
	return parseLog(out), nil
}

func parseLog(out []byte) []Commit {
	var commits []Commit
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, fieldSep, 4)
		if len(fields) != 4 || len(fields[0]) != 40 {
			continue
		}
		commits = append(commits, Commit{SHA: fields[0], Author: fields[1], Date: fields[2], Subject: fields[3]})
	}
	return commits
}

// ShowFile retrieves file content at a given ref (e.g., "HEAD"). A ref where
// the file does not exist, such as the commit that deleted it, yields "".
func ShowFile(root, ref, file string) (string, error) {
	ls := exec.Command("git", "ls-tree", "--name-only", ref, "--", file)
	ls.Dir = root
	listed, err := ls.Output()
	if err != nil {
		return "", fmt.Errorf("git ls-tree %s: %w", ref, err)
	}
	if strings.TrimSpace(string(listed)) == "" {
		return "", nil
	}

	cmd := exec.Command("git", "show", ref+":"+file)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git show %s:%s: %w", ref, file, err)
	}
	return string(out), nil
}

// RelPath converts path, relative to the working directory, to the
// repository-relative form git log and git show expect.
func RelPath(path string) (string, error) {
	cmd := exec.Command("git", "ls-files", "--full-name", "--error-unmatch", "--", path)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s is not tracked by git", path)
	}
	return strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0]), nil
}
