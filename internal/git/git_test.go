package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// testRepo is a throwaway repository with a fixed identity.
type testRepo struct {
	t   *testing.T
	dir string
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	r := &testRepo{t: t, dir: t.TempDir()}
	r.run("init")
	r.run("config", "user.email", "test@test.com")
	r.run("config", "user.name", "Test")
	return r
}

func (r *testRepo) run(args ...string) string {
	r.t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test",
		"GIT_COMMITTER_EMAIL=test@test.com",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

// commit writes content to file and commits it.
func (r *testRepo) commit(file, content, msg string) {
	r.t.Helper()
	path := filepath.Join(r.dir, file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatal(err)
	}
	r.run("add", file)
	r.run("commit", "-m", msg)
}

func TestFileHistory(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a.txt", "one\n", "first")
	r.commit("other.txt", "x\n", "unrelated")
	r.commit("a.txt", "one\ntwo\n", "second")

	commits, err := FileHistory(r.dir, "a.txt")
	if err != nil {
		t.Fatalf("FileHistory: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Subject != "first" || commits[1].Subject != "second" {
		t.Errorf("subjects = %q, %q; want oldest first", commits[0].Subject, commits[1].Subject)
	}
	for _, c := range commits {
		if len(c.SHA) != 40 {
			t.Errorf("expected 40-char SHA, got %q", c.SHA)
		}
		if c.Author != "Test" {
			t.Errorf("Author = %q", c.Author)
		}
		if c.Date == "" {
			t.Error("expected non-empty Date")
		}
	}
}

func TestShowFile(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a.txt", "hello\n", "add")
	r.run("rm", "a.txt")
	r.run("commit", "-m", "delete")

	content, err := ShowFile(r.dir, "HEAD~1", "a.txt")
	if err != nil {
		t.Fatalf("ShowFile: %v", err)
	}
	if content != "hello\n" {
		t.Errorf("content = %q", content)
	}

	content, err = ShowFile(r.dir, "HEAD", "a.txt")
	if err != nil {
		t.Fatalf("ShowFile after delete: %v", err)
	}
	if content != "" {
		t.Errorf("deleted file content = %q, want empty", content)
	}

	if _, err := ShowFile(r.dir, "no-such-ref", "a.txt"); err == nil {
		t.Error("expected error for unknown ref")
	}
}

func TestLoad(t *testing.T) {
	r := newTestRepo(t)
	r.commit("src/main.go", "package main\n", "create")
	r.commit("src/main.go", "package main\n\nfunc main() {}\n", "add main")
	r.run("rm", "src/main.go")
	r.run("commit", "-m", "delete")
	r.commit("src/main.go", "package main\n", "restore")

	revisions, err := Load(r.dir, "src/main.go")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(revisions) != 4 {
		t.Fatalf("expected 4 revisions, got %d", len(revisions))
	}
	if revisions[2].Content != "" {
		t.Errorf("deleting commit content = %q, want empty", revisions[2].Content)
	}
	if revisions[3].Metadata.Subject != "restore" {
		t.Errorf("last subject = %q", revisions[3].Metadata.Subject)
	}

	if _, err := Load(r.dir, "never.txt"); err == nil {
		t.Error("expected error for file without history")
	}
}

func TestParseLog(t *testing.T) {
	sha := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	out := sha + fieldSep + "Ann" + fieldSep + "2024-01-01T00:00:00+00:00" + fieldSep + "fix: a\x1fb\n" +
		"garbage line\n\n"

	commits := parseLog([]byte(out))
	if len(commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(commits))
	}
	if commits[0].Subject != "fix: a\x1fb" {
		t.Errorf("Subject = %q", commits[0].Subject)
	}
}

func TestRelPath(t *testing.T) {
	r := newTestRepo(t)
	r.commit("sub/file.txt", "x\n", "add")

	t.Chdir(filepath.Join(r.dir, "sub"))
	got, err := RelPath("file.txt")
	if err != nil {
		t.Fatalf("RelPath: %v", err)
	}
	if got != "sub/file.txt" {
		t.Errorf("RelPath() = %q, want sub/file.txt", got)
	}

	if _, err := RelPath("untracked.txt"); err == nil {
		t.Error("expected error for untracked file")
	}
}

func TestRevParseTopLevel(t *testing.T) {
	r := newTestRepo(t)
	t.Chdir(r.dir)

	result, err := RevParseTopLevel()
	if err != nil {
		t.Fatalf("RevParseTopLevel returned error: %v", err)
	}
	if result == "" {
		t.Error("expected non-empty result")
	}
}

func TestAuthor(t *testing.T) {
	// In unconfigured environments this is "unknown", which is fine.
	if Author() == "" {
		t.Error("Author returned empty string (expected at least 'unknown')")
	}
}
