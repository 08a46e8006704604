package blame

import (
	"fmt"
	"strings"
)

// Op is the kind of an edit operation.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	// OpReplace is handled exactly like a Delete of Old lines followed by an
	// Insert of New lines.
	OpReplace
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Edit covers a contiguous run of the old sequence (Old lines), the new
// sequence (New lines), or both.
type Edit struct {
	Op  Op
	Old int
	New int
}

func Equal(n int) Edit { return Edit{Op: OpEqual, Old: n, New: n} }

func Insert(n int) Edit { return Edit{Op: OpInsert, New: n} }

func Delete(n int) Edit { return Edit{Op: OpDelete, Old: n} }

func Replace(old, new int) Edit { return Edit{Op: OpReplace, Old: old, New: new} }

func (e Edit) String() string {
	switch e.Op {
	case OpEqual, OpInsert:
		return fmt.Sprintf("%s(%d)", e.Op, e.New)
	case OpDelete:
		return fmt.Sprintf("%s(%d)", e.Op, e.Old)
	}
	return fmt.Sprintf("%s(%d,%d)", e.Op, e.Old, e.New)
}

// EditScript is an ordered list of edits that, applied left to right,
// turns the old line sequence into the new one.
type EditScript []Edit

// OldLen returns the number of old lines the script consumes.
func (s EditScript) OldLen() int {
	n := 0
	for _, e := range s {
		n += e.Old
	}
	return n
}

// NewLen returns the number of new lines the script produces.
func (s EditScript) NewLen() int {
	n := 0
	for _, e := range s {
		n += e.New
	}
	return n
}

// Validate reports whether the script covers exactly oldLen old lines and
// newLen new lines with well-formed edits.
func (s EditScript) Validate(oldLen, newLen int) error {
	for i, e := range s {
		if e.Old < 0 || e.New < 0 {
			return fmt.Errorf("edit %d (%s): negative run", i, e)
		}
		switch e.Op {
		case OpEqual:
			if e.Old != e.New {
				return fmt.Errorf("edit %d (%s): equal run with old=%d new=%d", i, e, e.Old, e.New)
			}
		case OpInsert:
			if e.Old != 0 {
				return fmt.Errorf("edit %d (%s): insert consumes old lines", i, e)
			}
		case OpDelete:
			if e.New != 0 {
				return fmt.Errorf("edit %d (%s): delete produces new lines", i, e)
			}
		case OpReplace:
		default:
			return fmt.Errorf("edit %d: unknown op %d", i, int(e.Op))
		}
	}
	if got := s.OldLen(); got != oldLen {
		return fmt.Errorf("script consumes %d old lines, want %d", got, oldLen)
	}
	if got := s.NewLen(); got != newLen {
		return fmt.Errorf("script produces %d new lines, want %d", got, newLen)
	}
	return nil
}

func (s EditScript) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// appendEdit adds n lines of op to the script, merging with the previous
// edit when it has the same op.
func (s EditScript) appendEdit(op Op, n int) EditScript {
	if n <= 0 {
		return s
	}
	if k := len(s); k > 0 && s[k-1].Op == op {
		switch op {
		case OpEqual:
			s[k-1].Old += n
			s[k-1].New += n
		case OpInsert:
			s[k-1].New += n
		case OpDelete:
			s[k-1].Old += n
		}
		return s
	}
	switch op {
	case OpEqual:
		return append(s, Equal(n))
	case OpInsert:
		return append(s, Insert(n))
	default:
		return append(s, Delete(n))
	}
}

// Differ computes an edit script between two line sequences. The script
// must satisfy Validate(len(old), len(new)).
type Differ interface {
	Diff(old, new []string) EditScript
}

// DifferFunc adapts a plain function to Differ.
type DifferFunc func(old, new []string) EditScript

func (f DifferFunc) Diff(old, new []string) EditScript { return f(old, new) }
