package blame

import "iter"

// Line is one line of the final revision together with the metadata of the
// revision that introduced it.
type Line[T any] struct {
	Number   int // 0-based position in the final revision
	Content  string
	Revision *T
}

// Result is the read-only outcome of a blame run.
type Result[T any] struct {
	lines []Line[T]
}

func newResult[T any](st State[T]) *Result[T] {
	lines := make([]Line[T], len(st))
	for i, o := range st {
		lines[i] = Line[T]{Number: i, Content: o.Content, Revision: o.Owner}
	}
	return &Result[T]{lines: lines}
}

// Lines returns a copy of all lines in order.
func (r *Result[T]) Lines() []Line[T] {
	out := make([]Line[T], len(r.lines))
	copy(out, r.lines)
	return out
}

// Line returns the line at 0-based index i.
func (r *Result[T]) Line(i int) (Line[T], bool) {
	if i < 0 || i >= len(r.lines) {
		return Line[T]{}, false
	}
	return r.lines[i], true
}

func (r *Result[T]) Len() int      { return len(r.lines) }
func (r *Result[T]) IsEmpty() bool { return len(r.lines) == 0 }

// All iterates over (line number, line) pairs in order.
func (r *Result[T]) All() iter.Seq2[int, Line[T]] {
	return func(yield func(int, Line[T]) bool) {
		for i, l := range r.lines {
			if !yield(i, l) {
				return
			}
		}
	}
}

// Owners returns each distinct revision metadata that owns at least one
// line, in order of first appearance.
func (r *Result[T]) Owners() []*T {
	seen := make(map[*T]bool)
	var owners []*T
	for _, l := range r.lines {
		if !seen[l.Revision] {
			seen[l.Revision] = true
			owners = append(owners, l.Revision)
		}
	}
	return owners
}

// LinesOwnedBy returns the 0-based numbers of the lines owned by meta.
// Owners are compared by pointer identity.
func (r *Result[T]) LinesOwnedBy(meta *T) []int {
	var nums []int
	for _, l := range r.lines {
		if l.Revision == meta {
			nums = append(nums, l.Number)
		}
	}
	return nums
}
