package blame

// Owned is one entry of an ownership mapping: a line and the metadata of
// the revision that introduced it.
type Owned[T any] struct {
	Content string
	Owner   *T
}

// State is the ownership mapping after some prefix of the revisions has
// been processed. It is aligned 1:1 with the lines of the latest revision.
type State[T any] []Owned[T]

// NewState attributes every line to meta.
func NewState[T any](lines []string, meta *T) State[T] {
	st := make(State[T], len(lines))
	for i, l := range lines {
		st[i] = Owned[T]{Content: l, Owner: meta}
	}
	return st
}

// Propagate carries ownership from old to the revision whose lines are
// newLines. Lines matched by an Equal run keep their owner; lines
// introduced by Insert (or the insert half of Replace) are owned by meta;
// deleted lines are dropped.
//
// The walk is a single pass over old, newLines and script. A script that
// does not line up with old and newLines panics with *InvariantError.
func Propagate[T any](old State[T], newLines []string, script EditScript, meta *T) State[T] {
	out := make(State[T], 0, len(newLines))
	oi := 0 // cursor into old
	for _, e := range script {
		if e.Old < 0 || e.New < 0 {
			violated("negative run in %s", e)
		}
		switch e.Op {
		case OpEqual:
			if e.Old != e.New {
				violated("equal run %s has mismatched sides", e)
			}
			if oi+e.Old > len(old) || len(out)+e.New > len(newLines) {
				violated("%s overruns old=%d/%d new=%d/%d", e, oi, len(old), len(out), len(newLines))
			}
			out = append(out, old[oi:oi+e.Old]...)
			oi += e.Old
		case OpInsert, OpDelete, OpReplace:
			if e.Op == OpInsert && e.Old != 0 || e.Op == OpDelete && e.New != 0 {
				violated("malformed %s", e)
			}
			if oi+e.Old > len(old) {
				violated("%s overruns old=%d/%d", e, oi, len(old))
			}
			oi += e.Old
			if len(out)+e.New > len(newLines) {
				violated("%s overruns new=%d/%d", e, len(out), len(newLines))
			}
			for _, l := range newLines[len(out) : len(out)+e.New] {
				out = append(out, Owned[T]{Content: l, Owner: meta})
			}
		default:
			violated("unknown op %d", int(e.Op))
		}
	}
	if oi != len(old) || len(out) != len(newLines) {
		violated("script covers old=%d/%d new=%d/%d", oi, len(old), len(out), len(newLines))
	}
	return out
}
