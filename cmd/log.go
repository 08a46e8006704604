package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/jensroland/lineblame/internal/debug"
	"github.com/jensroland/lineblame/internal/format"
	"github.com/jensroland/lineblame/internal/project"
)

// RunLog handles "lineblame log": show the debug log of recent blame runs.
func RunLog(args []string) {
	fs := flag.NewFlagSet("lineblame log", flag.ExitOnError)
	n := fs.Int("n", 100, "Number of lines to show")
	entries := fs.Int("entries", 0, "Show the last N whole entries instead of lines")
	fs.Parse(reorderArgs(fs, args))

	e := loadEnv(false)
	if *entries > 0 {
		cmdLogEntries(e.paths, *entries)
		return
	}
	cmdLog(e.paths, *n)
}

func cmdLog(paths project.Paths, n int) {
	logFile := debug.Path(paths.CacheDir, debug.BlameLog)
	tail, err := debug.Tail(paths.CacheDir, debug.BlameLog, n)
	if err != nil {
		fmt.Printf("No log file at %s\n", logFile)
		return
	}

	fmt.Printf("%s--- %s (last %d lines) ---%s\n\n", format.Dim, logFile, len(tail), format.Reset)
	fmt.Println(strings.Join(tail, "\n"))
}

func cmdLogEntries(paths project.Paths, n int) {
	entries, err := debug.LastEntries(paths.CacheDir, debug.BlameLog, n)
	if err != nil {
		fmt.Printf("No log file at %s\n", debug.Path(paths.CacheDir, debug.BlameLog))
		return
	}
	for _, entry := range entries {
		fmt.Printf("\n%s=== entry ===%s\n\n", format.Bold, format.Reset)
		fmt.Println(entry)
	}
}
