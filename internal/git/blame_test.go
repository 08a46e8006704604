package git

import (
	"fmt"
	"testing"

	"github.com/jensroland/lineblame/pkg/blame"
)

func TestBlameFile_MultipleCommits(t *testing.T) {
	r := newTestRepo(t)
	r.commit("test.txt", "line1\nline2\nline3\n", "initial commit")
	r.commit("test.txt", "line1\nmodified\nline3\n", "modify line 2")

	entries, err := BlameFile(r.dir, "HEAD", "test.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].SHA != entries[3].SHA {
		t.Errorf("lines 1 and 3 should have same SHA: %s vs %s", entries[1].SHA, entries[3].SHA)
	}
	if entries[2].SHA == entries[1].SHA {
		t.Error("line 2 should have different SHA from line 1")
	}
}

// Forward blame over a linear history agrees with git blame when every
// change is a plain insertion, deletion or in-place edit.
func TestForwardBlameMatchesGitBlame(t *testing.T) {
	r := newTestRepo(t)
	r.commit("test.txt", "line1\nline2\nline3\n", "initial")
	r.commit("test.txt", "new1\nnew2\nline1\nline2\nline3\n", "insert at top")
	r.commit("test.txt", "new1\nnew2\nline1\nchanged\nline3\ntail\n", "edit and append")
	r.commit("test.txt", "new1\nline1\nchanged\nline3\ntail\n", "delete")

	revisions, err := Load(r.dir, "test.txt")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	entries, err := BlameFile(r.dir, "HEAD", "test.txt")
	if err != nil {
		t.Fatalf("BlameFile: %v", err)
	}

	for _, a := range []blame.Algorithm{blame.Myers, blame.Patience} {
		t.Run(a.String(), func(t *testing.T) {
			res, err := blame.BlameWithOptions(revisions, blame.Options{Algorithm: a})
			if err != nil {
				t.Fatalf("Blame: %v", err)
			}
			if res.Len() != len(entries) {
				t.Fatalf("forward blame has %d lines, git blame %d", res.Len(), len(entries))
			}
			for _, l := range res.Lines() {
				if got, want := l.Revision.SHA, entries[l.Number+1].SHA; got != want {
					t.Errorf("line %d (%q): %s, git blame says %s", l.Number+1, l.Content, got[:8], want[:8])
				}
			}
		})
	}
}

func TestParsePorcelainBlame(t *testing.T) {
	out := fmt.Sprintf(
		"%s 1 1 1\nauthor Test\ncommitter Test\nsummary commit 1\nfilename test.txt\n\tline1\n"+
			"%s 1 2 1\nauthor Test\ncommitter Test\nsummary commit 2\nprevious %s test.txt\nfilename test.txt\n\tline2\n",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"cccccccccccccccccccccccccccccccccccccccc",
	)

	entries := parsePorcelainBlame([]byte(out))

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].SHA != "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Errorf("line 1 SHA = %s", entries[1].SHA)
	}
	if entries[2].SHA != "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb" {
		t.Errorf("line 2 SHA = %s", entries[2].SHA)
	}
}
