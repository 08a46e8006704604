package blame

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// maxDistinctLines bounds how many distinct lines fit in the rune alphabet
// (one rune per line, surrogates skipped). Larger inputs go to the patience
// engine instead.
const maxDistinctLines = 1_000_000

type myersDiffer struct{}

func (myersDiffer) Diff(old, new []string) EditScript {
	if s, ok := myers(old, new); ok {
		return s
	}
	return patienceDiffer{}.Diff(old, new)
}

// myers runs the diffmatchpatch bisection over lines. Each line is mapped
// to one rune, so the rune count of every diff chunk is its line count.
// It reports false when the inputs have too many distinct lines.
func myers(old, new []string) (EditScript, bool) {
	if len(old) == 0 || len(new) == 0 {
		return wholesale(len(old), len(new)), true
	}
	r1, r2, ok := lineRunes(old, new)
	if !ok {
		return nil, false
	}
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // no deadline: optimal, deterministic output
	diffs := dmp.DiffMainRunes(r1, r2, false)

	var script EditScript
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			script = script.appendEdit(OpEqual, n)
		case diffmatchpatch.DiffInsert:
			script = script.appendEdit(OpInsert, n)
		case diffmatchpatch.DiffDelete:
			script = script.appendEdit(OpDelete, n)
		}
	}
	return script, true
}

// lineRunes interns every distinct line as one rune, skipping the
// surrogate range so each rune stays valid UTF-8. It reports false when
// there are more than maxDistinctLines distinct lines.
func lineRunes(old, new []string) ([]rune, []rune, bool) {
	ids := make(map[string]rune, len(old))
	intern := func(lines []string) ([]rune, bool) {
		rs := make([]rune, len(lines))
		for i, l := range lines {
			r, ok := ids[l]
			if !ok {
				if len(ids) >= maxDistinctLines {
					return nil, false
				}
				r = rune(len(ids) + 1)
				if r >= 0xD800 {
					r += 0x800
				}
				ids[l] = r
			}
			rs[i] = r
		}
		return rs, true
	}
	r1, ok := intern(old)
	if !ok {
		return nil, nil, false
	}
	r2, ok := intern(new)
	return r1, r2, ok
}

// wholesale is the script for a side with no lines: everything inserted or
// everything deleted.
func wholesale(oldLen, newLen int) EditScript {
	var s EditScript
	s = s.appendEdit(OpDelete, oldLen)
	return s.appendEdit(OpInsert, newLen)
}
