// Package blame attributes every line of the last revision in a linear
// history to the revision that introduced it.
//
// Revisions are processed oldest first. The ownership of each line is
// carried forward from one revision to the next along the edit script
// between them, so no revision is ever diffed against anything but its
// predecessor. A line that disappears and comes back, or moves without the
// diff engine matching it, is owned by the revision where it reappears.
package blame

import "fmt"

// Revision is one snapshot of the text and the caller's metadata for it.
// The metadata is never inspected; result lines point at it.
type Revision[T any] struct {
	Content  string
	Metadata *T
}

// Blame runs BlameWithOptions with DefaultOptions.
func Blame[T any](revisions []Revision[T]) (*Result[T], error) {
	return BlameWithOptions(revisions, DefaultOptions())
}

// BlameWithOptions attributes the lines of the last revision, diffing
// consecutive revisions with opts.Algorithm. It returns an error wrapping
// ErrInvalidInput when revisions is empty or the algorithm is unknown.
func BlameWithOptions[T any](revisions []Revision[T], opts Options) (*Result[T], error) {
	differ, err := NewDiffer(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	return BlameWithDiffer(revisions, differ)
}

// BlameWithDiffer is BlameWithOptions with a caller supplied diff engine.
// An engine whose scripts do not cover both line sequences makes the call
// panic with *InvariantError.
func BlameWithDiffer[T any](revisions []Revision[T], differ Differ) (*Result[T], error) {
	if len(revisions) == 0 {
		return nil, fmt.Errorf("%w: no revisions provided", ErrInvalidInput)
	}
	if differ == nil {
		return nil, fmt.Errorf("%w: nil differ", ErrInvalidInput)
	}

	prevLines := SplitLines(revisions[0].Content)
	state := NewState(prevLines, revisions[0].Metadata)

	for i := 1; i < len(revisions); i++ {
		lines := SplitLines(revisions[i].Content)
		state = step(i, state, prevLines, lines, differ, revisions[i].Metadata)
		prevLines = lines
	}
	return newResult(state), nil
}

// step advances the state by one revision, tagging invariant failures with
// the revision index.
func step[T any](rev int, state State[T], prev, lines []string, differ Differ, meta *T) State[T] {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InvariantError); ok && ie.Revision < 0 {
				ie.Revision = rev
			}
			panic(r)
		}
	}()
	if len(state) != len(prev) {
		violated("state has %d entries for %d lines", len(state), len(prev))
	}
	return Propagate(state, lines, differ.Diff(prev, lines), meta)
}
