package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jensroland/lineblame/internal/format"
	"github.com/jensroland/lineblame/internal/index"
)

// topN caps the per-author and per-file tables.
const topN = 10

// RunStats handles "lineblame stats": summarize the SQLite index.
func RunStats(args []string) {
	fs := flag.NewFlagSet("lineblame stats", flag.ExitOnError)
	dbFlag := fs.String("db", "", "SQLite index to read (default from config, else the project cache)")
	jsonOutput := fs.Bool("json", false, "Output results as JSON")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	fs.Parse(reorderArgs(fs, args))

	e := loadEnv(*noColor)
	path := e.dbPath(*dbFlag)
	if path == "" {
		path = e.paths.IndexDB
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "No index at %s.\n", path)
		fmt.Fprintln(os.Stderr, "Run 'lineblame -db <path> <dir>' to build one.")
		os.Exit(1)
	}
	if err := cmdStats(path, *jsonOutput); err != nil {
		fatal(err)
	}
}

func cmdStats(path string, jsonOutput bool) error {
	db, err := index.Open(path)
	if err != nil {
		return fmt.Errorf("opening index at %s: %w", path, err)
	}
	defer db.Close()

	s, err := index.ReadStats(db)
	if err != nil {
		return err
	}

	if jsonOutput {
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	fmt.Printf("%slineblame statistics%s\n\n", format.Bold, format.Reset)
	fmt.Printf("  Files indexed:  %d\n", s.Files)
	fmt.Printf("  Revisions:      %d\n", s.Revisions)
	fmt.Printf("  Lines:          %d\n", s.Lines)

	printCounts("Lines by author", s.ByAuthor, s.Lines)
	printCounts("Lines by file", s.ByFile, s.Lines)
	return nil
}

func printCounts(title string, counts []index.Count, total int) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("\n  %s%s:%s\n", format.Bold, title, format.Reset)
	for i, c := range counts {
		if i == topN {
			fmt.Printf("    %s… %d more%s\n", format.Dim, len(counts)-topN, format.Reset)
			break
		}
		fmt.Printf("    %5d  %5.1f%%  %s\n", c.Lines, percent(c.Lines, total), c.Name)
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
