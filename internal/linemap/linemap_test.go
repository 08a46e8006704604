package linemap

import (
	"reflect"
	"testing"

	"github.com/jensroland/lineblame/internal/lineset"
	"github.com/jensroland/lineblame/pkg/blame"
)

// hunk is the script of a single edit at 1-based start in a file of total
// old lines: oldCount lines replaced by newCount.
func hunk(start, oldCount, newCount, total int) blame.EditScript {
	s := blame.EditScript{blame.Equal(start - 1)}
	switch {
	case oldCount == 0:
		s = append(s, blame.Insert(newCount))
	case newCount == 0:
		s = append(s, blame.Delete(oldCount))
	default:
		s = append(s, blame.Replace(oldCount, newCount))
	}
	return append(s, blame.Equal(total-start+1-oldCount))
}

func mustLines(t *testing.T, s string) lineset.LineSet {
	t.Helper()
	ls, err := lineset.FromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return ls
}

func TestNoSubsequentEdits(t *testing.T) {
	result := AdjustLinePositions(mustLines(t, "10-14"), nil)
	if result.Superseded {
		t.Fatal("should not be superseded")
	}
	if !reflect.DeepEqual(result.Current.Lines(), []int{10, 11, 12, 13, 14}) {
		t.Fatalf("expected L10-14, got %v", result.Current.Lines())
	}
}

func TestEditBefore_ShiftsDown(t *testing.T) {
	// 3 lines inserted at L5, before L10-14
	result := AdjustLinePositions(mustLines(t, "10-14"), []blame.EditScript{hunk(5, 0, 3, 30)})
	if !reflect.DeepEqual(result.Current.Lines(), []int{13, 14, 15, 16, 17}) {
		t.Fatalf("expected [13 14 15 16 17], got %v", result.Current.Lines())
	}
}

func TestEditAfter_NoChange(t *testing.T) {
	result := AdjustLinePositions(mustLines(t, "10-14"), []blame.EditScript{hunk(50, 3, 5, 60)})
	if result.Current.String() != "10-14" {
		t.Fatalf("expected 10-14, got %s", result.Current)
	}
}

func TestFullOverwrite_Superseded(t *testing.T) {
	// L8-16 replaced, fully containing L10-14
	result := AdjustLinePositions(mustLines(t, "10-14"), []blame.EditScript{hunk(8, 9, 4, 30)})
	if !result.Superseded {
		t.Fatal("should be superseded")
	}
	if !result.Current.IsEmpty() {
		t.Fatalf("superseded lines should have no current position, got %s", result.Current)
	}
	if result.Original.String() != "10-14" {
		t.Fatalf("original should be kept, got %s", result.Original)
	}
}

func TestWholeFileRewrite_Superseded(t *testing.T) {
	s := blame.EditScript{blame.Replace(30, 12)}
	if result := AdjustLinePositions(mustLines(t, "10-14,20-25"), []blame.EditScript{s}); !result.Superseded {
		t.Fatal("rewriting every line should supersede the set")
	}
}

func TestMultipleCumulativeShifts(t *testing.T) {
	scripts := []blame.EditScript{
		hunk(5, 0, 2, 40),  // +2 before
		hunk(10, 0, 3, 42), // +3 before
	}
	result := AdjustLinePositions(mustLines(t, "20-24"), scripts)
	if result.Current.String() != "25-29" {
		t.Fatalf("expected 25-29, got %s", result.Current)
	}
}

func TestReplacementBefore_ShiftsByDelta(t *testing.T) {
	result := AdjustLinePositions(mustLines(t, "20-24"), []blame.EditScript{hunk(5, 2, 5, 40)})
	if result.Current.String() != "23-27" {
		t.Fatalf("expected 23-27, got %s", result.Current)
	}
}

func TestDeletionBefore_ShiftsUp(t *testing.T) {
	result := AdjustLinePositions(mustLines(t, "20-24"), []blame.EditScript{hunk(5, 5, 0, 40)})
	if result.Current.String() != "15-19" {
		t.Fatalf("expected 15-19, got %s", result.Current)
	}
}

func TestEmptySet(t *testing.T) {
	result := AdjustLinePositions(lineset.LineSet{}, []blame.EditScript{hunk(1, 1, 0, 3)})
	if result.Superseded || !result.Current.IsEmpty() {
		t.Fatalf("empty set should stay empty and not superseded: %+v", result)
	}
}

func TestPartialOverwrite_RemainingLines(t *testing.T) {
	// Sparse L10,12,15, then L11-13 rewritten as 1 line
	result := AdjustLinePositions(mustLines(t, "10,12,15"), []blame.EditScript{hunk(11, 3, 1, 20)})
	if result.Superseded {
		t.Fatal("should not be superseded")
	}
	if !reflect.DeepEqual(result.Current.Lines(), []int{10, 13}) {
		t.Fatalf("expected [10 13], got %v", result.Current.Lines())
	}
}

func TestZeroDeltaEdit_NoShift(t *testing.T) {
	result := AdjustLinePositions(mustLines(t, "10-14"), []blame.EditScript{hunk(5, 3, 3, 30)})
	if result.Current.String() != "10-14" {
		t.Fatalf("expected 10-14, got %s", result.Current)
	}
}

func TestInsertionWithinRange_Shifts(t *testing.T) {
	// 2 lines inserted at L12, inside L10-14
	result := AdjustLinePositions(mustLines(t, "10-14"), []blame.EditScript{hunk(12, 0, 2, 30)})
	if !reflect.DeepEqual(result.Current.Lines(), []int{10, 11, 14, 15, 16}) {
		t.Fatalf("expected [10 11 14 15 16], got %v", result.Current.Lines())
	}
}

func TestFollow_PastEnd(t *testing.T) {
	got := Follow(mustLines(t, "2,9"), blame.EditScript{blame.Equal(3)})
	if got.String() != "2" {
		t.Fatalf("lines past the old side should be dropped, got %s", got)
	}
}

func TestFollow_MatchesDiff(t *testing.T) {
	old := []string{"a", "b", "c", "d", "e"}
	new := []string{"x", "a", "c", "d", "y", "e"}
	d, err := blame.NewDiffer(blame.Myers)
	if err != nil {
		t.Fatal(err)
	}
	// a, c, d and e survive; b is deleted
	got := Follow(lineset.FromRange(1, 5), d.Diff(old, new))
	if got.String() != "2-4,6" {
		t.Fatalf("expected 2-4,6, got %s", got)
	}
}
