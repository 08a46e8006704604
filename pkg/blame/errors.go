package blame

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the caller supplies input no blame can
// be computed for, such as an empty revision list.
var ErrInvalidInput = errors.New("invalid input")

// InvariantError is the panic value raised when an edit script does not
// line up with the sequences it was computed for. It signals a defect in
// the diff engine, not bad caller input.
type InvariantError struct {
	Revision int
	Msg      string
}

func (e *InvariantError) Error() string {
	if e.Revision < 0 {
		return "blame invariant violated: " + e.Msg
	}
	return fmt.Sprintf("blame invariant violated at revision %d: %s", e.Revision, e.Msg)
}

func violated(format string, args ...interface{}) {
	panic(&InvariantError{Revision: -1, Msg: fmt.Sprintf(format, args...)})
}
