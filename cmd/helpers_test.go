package cmd

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/jensroland/lineblame/internal/config"
	"github.com/jensroland/lineblame/internal/format"
	"github.com/jensroland/lineblame/internal/project"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	fn()
	w.Close()
	out, _ := io.ReadAll(r)
	os.Stdout = old
	return string(out)
}

// testEnv is an env rooted in a temp dir with default config and no colors.
func testEnv(t *testing.T) *env {
	t.Helper()
	format.SetColor(false)
	root := t.TempDir()
	return &env{root: root, paths: project.NewPaths(root), cfg: config.Default()}
}

// writeRevisions writes rev0.txt, rev1.txt, ... into a new dir under e.root.
func writeRevisions(t *testing.T, e *env, contents ...string) string {
	t.Helper()
	dir := filepath.Join(e.root, "revs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for i, c := range contents {
		name := filepath.Join(dir, "rev"+strconv.Itoa(i)+".txt")
		if err := os.WriteFile(name, []byte(c), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// gitCommit writes content to file in the repo at dir and commits it.
func gitCommit(t *testing.T, dir, file, content, msg string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	gitRun(t, dir, "add", file)
	gitRun(t, dir, "commit", "-m", msg)
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test",
		"GIT_COMMITTER_EMAIL=test@test.com",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}
