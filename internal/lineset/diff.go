package lineset

import "github.com/jensroland/lineblame/pkg/blame"

// ChangedLines returns the 1-based lines of the new revision that script
// introduces: the new side of every Insert and Replace.
func ChangedLines(script blame.EditScript) LineSet {
	var changed []int
	line := 1
	for _, e := range script {
		if e.Op != blame.OpEqual {
			for k := 0; k < e.New; k++ {
				changed = append(changed, line+k)
			}
		}
		line += e.New
	}
	return LineSet{lines: changed}
}

// DeletedLines returns the 1-based lines of the old revision that script
// removes.
func DeletedLines(script blame.EditScript) LineSet {
	var deleted []int
	line := 1
	for _, e := range script {
		if e.Op != blame.OpEqual {
			for k := 0; k < e.Old; k++ {
				deleted = append(deleted, line+k)
			}
		}
		line += e.Old
	}
	return LineSet{lines: deleted}
}
