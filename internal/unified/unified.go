// Package unified renders a blame edit script as a unified diff.
package unified

import (
	"bytes"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/jensroland/lineblame/pkg/blame"
)

// op is one line of the flattened script with the old and new cursors
// before it.
type op struct {
	kind   byte // ' ', '-' or '+'
	oi, ni int
}

func flatten(script blame.EditScript) []op {
	var ops []op
	oi, ni := 0, 0
	for _, e := range script {
		if e.Op == blame.OpEqual {
			for k := 0; k < e.Old; k++ {
				ops = append(ops, op{' ', oi, ni})
				oi++
				ni++
			}
			continue
		}
		for k := 0; k < e.Old; k++ {
			ops = append(ops, op{'-', oi, ni})
			oi++
		}
		for k := 0; k < e.New; k++ {
			ops = append(ops, op{'+', oi, ni})
			ni++
		}
	}
	return ops
}

// Hunks groups the changes of script into hunks with up to context lines of
// unchanged text around them. Changes closer than 2*context lines share a
// hunk. script must be valid for old and new.
func Hunks(old, new []string, script blame.EditScript, context int) []*diff.Hunk {
	if context < 0 {
		context = 0
	}
	ops := flatten(script)

	var hunks []*diff.Hunk
	for i := 0; i < len(ops); i++ {
		if ops[i].kind == ' ' {
			continue
		}
		start := max(0, i-context)
		last := i
		for j := i + 1; j < len(ops) && j-last-1 <= 2*context; j++ {
			if ops[j].kind != ' ' {
				last = j
			}
		}
		end := min(len(ops), last+context+1)
		hunks = append(hunks, buildHunk(old, new, ops[start:end]))
		i = end - 1
	}
	return hunks
}

func buildHunk(old, new []string, ops []op) *diff.Hunk {
	var body bytes.Buffer
	var origLines, newLines int32
	for _, o := range ops {
		body.WriteByte(o.kind)
		switch o.kind {
		case ' ':
			body.WriteString(old[o.oi])
			origLines++
			newLines++
		case '-':
			body.WriteString(old[o.oi])
			origLines++
		case '+':
			body.WriteString(new[o.ni])
			newLines++
		}
		body.WriteByte('\n')
	}

	h := &diff.Hunk{
		OrigStartLine: int32(ops[0].oi),
		OrigLines:     origLines,
		NewStartLine:  int32(ops[0].ni),
		NewLines:      newLines,
		Body:          body.Bytes(),
	}
	// Empty ranges point at the line before them.
	if origLines > 0 {
		h.OrigStartLine++
	}
	if newLines > 0 {
		h.NewStartLine++
	}
	return h
}

// FileDiff builds the diff of two revisions of one file.
func FileDiff(oldName, newName string, old, new []string, script blame.EditScript, context int) *diff.FileDiff {
	return &diff.FileDiff{
		OrigName: oldName,
		NewName:  newName,
		Hunks:    Hunks(old, new, script, context),
	}
}

// Print renders the unified diff of two revisions. Identical revisions
// render as nothing.
func Print(oldName, newName string, old, new []string, script blame.EditScript, context int) ([]byte, error) {
	return diff.PrintFileDiff(FileDiff(oldName, newName, old, new, script, context))
}
