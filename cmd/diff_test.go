package cmd

import (
	"strconv"
	"strings"
	"testing"

	"github.com/jensroland/lineblame/internal/lineset"
	"github.com/jensroland/lineblame/pkg/blame"
)

func testHistory(contents ...string) history {
	h := history{File: "f.txt", Source: "files"}
	for i, c := range contents {
		h.Revisions = append(h.Revisions, blame.Revision[revInfo]{
			Content:  c,
			Metadata: &revInfo{ID: "rev" + strconv.Itoa(i)},
		})
	}
	return h
}

func TestCmdDiff_Unified(t *testing.T) {
	h := testHistory("a\nb\nc\n", "a\nB\nc\nd\n")

	out := captureStdout(t, func() {
		if err := cmdDiff(h, 0, 1, diffOpts{algorithm: blame.Myers, unified: true, context: 3}); err != nil {
			t.Error(err)
		}
	})
	for _, want := range []string{"--- f.txt@rev0", "+++ f.txt@rev1", "@@ -1,3 +1,4 @@", "-b", "+B", "+d", " c"} {
		if !strings.Contains(out, want) {
			t.Errorf("unified diff should contain %q, got:\n%s", want, out)
		}
	}
}

func TestCmdDiff_SideBySide(t *testing.T) {
	testEnv(t)
	h := testHistory("a\nb\nc\n", "a\nc\nd\n")

	out := captureStdout(t, func() {
		if err := cmdDiff(h, 0, 1, diffOpts{algorithm: blame.Patience, context: 3}); err != nil {
			t.Error(err)
		}
	})
	for _, want := range []string{"revision 0 (rev0) → 1 (rev1)", "+1 -1", "changed in 1: L3", "removed from 0: L2", "Before", "After"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestCmdDiff_OutOfRange(t *testing.T) {
	h := testHistory("a\n", "b\n")
	for _, r := range [][2]int{{0, 2}, {-1, 1}} {
		if err := cmdDiff(h, r[0], r[1], diffOpts{unified: true, context: 3}); err == nil {
			t.Errorf("cmdDiff(%d, %d) should fail", r[0], r[1])
		}
	}
}

func TestCmdDiff_FollowLines(t *testing.T) {
	testEnv(t)
	h := testHistory("a\nb\nc\n", "new\na\nb\nc\n", "new\na\nB\nc\n")

	out := captureStdout(t, func() {
		if err := cmdDiff(h, 0, 2, diffOpts{follow: lineset.New(1, 2, 3)}); err != nil {
			t.Error(err)
		}
	})
	if !strings.Contains(out, "L1-3 of revision 0 → L2,4 of revision 2") {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "1 of 3 lines rewritten or deleted") {
		t.Errorf("should count the rewritten line: %s", out)
	}

	out = captureStdout(t, func() {
		if err := cmdDiff(h, 1, 2, diffOpts{follow: lineset.New(3)}); err != nil {
			t.Error(err)
		}
	})
	if !strings.Contains(out, "superseded") {
		t.Errorf("a rewritten line should be superseded: %s", out)
	}

	if err := cmdDiff(h, 2, 0, diffOpts{follow: lineset.New(1)}); err == nil {
		t.Error("following lines backwards should fail")
	}
	if err := cmdDiff(h, 0, 1, diffOpts{follow: lineset.New(4)}); err == nil {
		t.Error("following a line past the end should fail")
	}
}
