package format

import (
	"os"

	"golang.org/x/term"
)

var (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Yellow  = "\033[33m"
	Cyan    = "\033[36m"
	Green   = "\033[32m"
	Magenta = "\033[35m"
	Blue    = "\033[34m"
	Red     = "\033[31m"
)

var ansi = [...]string{Reset, Bold, Dim, Yellow, Cyan, Green, Magenta, Blue, Red}

func init() {
	SetColor(StdoutIsTerminal())
}

// StdoutIsTerminal reports whether stdout is a terminal and NO_COLOR is unset.
func StdoutIsTerminal() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// SetColor turns ANSI output on or off.
func SetColor(on bool) {
	vars := []*string{&Reset, &Bold, &Dim, &Yellow, &Cyan, &Green, &Magenta, &Blue, &Red}
	for i, v := range vars {
		if on {
			*v = ansi[i]
		} else {
			*v = ""
		}
	}
}

// ownerColor cycles through a palette so neighbouring revisions differ.
func ownerColor(rev int) string {
	palette := []string{Cyan, Yellow, Green, Magenta, Blue}
	if rev < 0 {
		return Dim
	}
	return palette[rev%len(palette)]
}

// TermWidth returns the terminal width, defaulting to 80.
func TermWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
