package blame

import (
	"fmt"
	"strings"
)

// Algorithm selects the diff engine used between consecutive revisions.
type Algorithm int

const (
	// Myers is the default: a minimal edit script, as git diff produces.
	Myers Algorithm = iota
	// Patience anchors on lines unique to both sides, which tends to keep
	// reorganized code blocks together.
	Patience
)

func (a Algorithm) String() string {
	switch a {
	case Myers:
		return "myers"
	case Patience:
		return "patience"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// ParseAlgorithm accepts "myers" or "patience" in any case. An empty name
// selects Myers.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "myers":
		return Myers, nil
	case "patience":
		return Patience, nil
	}
	return 0, fmt.Errorf("%w: unknown diff algorithm %q", ErrInvalidInput, name)
}

// NewDiffer returns the built-in engine for a.
func NewDiffer(a Algorithm) (Differ, error) {
	switch a {
	case Myers:
		return myersDiffer{}, nil
	case Patience:
		return patienceDiffer{}, nil
	}
	return nil, fmt.Errorf("%w: unknown diff algorithm %d", ErrInvalidInput, int(a))
}

// Options configures BlameWithOptions.
type Options struct {
	// Algorithm picks the diff engine. The zero value is Myers.
	Algorithm Algorithm
}

// DefaultOptions returns the options Blame uses: Myers diffing.
func DefaultOptions() Options {
	return Options{Algorithm: Myers}
}
