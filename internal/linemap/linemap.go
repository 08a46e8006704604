// Package linemap follows line numbers forward through edit scripts.
package linemap

import (
	"github.com/jensroland/lineblame/internal/lineset"
	"github.com/jensroland/lineblame/pkg/blame"
)

// Adjusted is a set of lines followed from one revision to a later one.
type Adjusted struct {
	Original   lineset.LineSet
	Current    lineset.LineSet // positions in the last revision
	Superseded bool            // every line was rewritten or deleted on the way
}

// AdjustLinePositions follows lines through scripts, one per later
// revision, oldest first. For each script:
//   - Lines inside an Equal run move to their new position
//   - Lines inside a deleted or replaced region are dropped
//
// Once no line is left the set is superseded and Current stays empty.
func AdjustLinePositions(lines lineset.LineSet, scripts []blame.EditScript) *Adjusted {
	adj := &Adjusted{Original: lines}
	if lines.IsEmpty() {
		return adj
	}

	current := lines
	for _, s := range scripts {
		current = Follow(current, s)
		if current.IsEmpty() {
			adj.Superseded = true
			return adj
		}
	}
	adj.Current = current
	return adj
}

// Follow maps 1-based lines on the old side of script to the new side.
// Lines the script removes, or that lie past its old side, are dropped.
func Follow(lines lineset.LineSet, script blame.EditScript) lineset.LineSet {
	want := lines.Lines()
	var moved []int
	k := 0
	oldLine, newLine := 1, 1
	for _, e := range script {
		for k < len(want) && want[k] < oldLine+e.Old {
			if e.Op == blame.OpEqual {
				moved = append(moved, newLine+want[k]-oldLine)
			}
			k++
		}
		oldLine += e.Old
		newLine += e.New
	}
	return lineset.New(moved...)
}
