package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jensroland/lineblame/internal/revstore"
)

func TestCmdRecord(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "store")
	file := filepath.Join(dir, "notes.txt")

	for i, content := range []string{"one\n", "one\ntwo\n"} {
		if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		out := captureStdout(t, func() {
			if err := cmdRecord(store, file, "notes.txt", revstore.Meta{Author: "ann", Message: "edit"}); err != nil {
				t.Error(err)
			}
		})
		if want := "Recorded notes.txt revision " + strconv.Itoa(i); !strings.Contains(out, want) {
			t.Errorf("output = %q, want it to contain %q", out, want)
		}
	}

	revs, err := revstore.Load(store, "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(revs) != 2 || revs[1].Content != "one\ntwo\n" || revs[1].Metadata.Author != "ann" {
		t.Errorf("stored revisions = %+v", revs)
	}
}

func TestCmdRecord_MissingFile(t *testing.T) {
	dir := t.TempDir()
	if err := cmdRecord(filepath.Join(dir, "store"), filepath.Join(dir, "nope.txt"), "", revstore.Meta{}); err == nil {
		t.Error("recording a missing file should fail")
	}
	if revstore.IsStore(filepath.Join(dir, "store")) {
		t.Error("a failed record should not create the store")
	}
}
