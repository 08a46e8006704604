package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jensroland/lineblame/internal/format"
	"github.com/jensroland/lineblame/internal/linemap"
	"github.com/jensroland/lineblame/internal/lineset"
	"github.com/jensroland/lineblame/internal/unified"
	"github.com/jensroland/lineblame/pkg/blame"
)

// RunDiff handles "lineblame diff": show the edit script between two
// revisions of a history.
func RunDiff(args []string) {
	fs := flag.NewFlagSet("lineblame diff", flag.ExitOnError)
	algorithm := fs.String("algorithm", "", "Diff algorithm: myers or patience")
	unifiedOut := fs.Bool("unified", false, "Print a unified diff instead of the side-by-side view")
	contextLines := fs.Int("context", -1, "Context lines in unified diffs (default from config, else 3)")
	useGit := fs.Bool("git", false, "Path is a file tracked by git")
	file := fs.String("file", "", "File to diff from a revision store holding several")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	line := fs.String("L", "", "Follow these lines of revision i to where they are in revision j")
	fs.Parse(reorderArgs(fs, args))

	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Usage: lineblame diff [-unified] [-context n] [-L lines] [-git] <path> <i> <j>")
		os.Exit(2)
	}
	from, err1 := strconv.Atoi(fs.Arg(1))
	to, err2 := strconv.Atoi(fs.Arg(2))
	if err1 != nil || err2 != nil {
		fatal(fmt.Errorf("revision numbers must be integers, got %q and %q", fs.Arg(1), fs.Arg(2)))
	}

	var follow lineset.LineSet
	if *line != "" {
		var err error
		if follow, err = lineset.FromString(*line); err != nil {
			fatal(err)
		}
	}

	e := loadEnv(*noColor)
	algo, err := e.algorithm(*algorithm)
	if err != nil {
		fatal(err)
	}
	if *contextLines < 0 {
		*contextLines = e.cfg.Context
	}

	src := source{git: *useGit, file: *file, workers: 1}
	hs, err := loadHistories(context.Background(), e.root, fs.Args()[:1], src)
	if err != nil {
		fatal(err)
	}
	o := diffOpts{algorithm: algo, unified: *unifiedOut, context: *contextLines, follow: follow}
	if err := cmdDiff(hs[0], from, to, o); err != nil {
		fatal(err)
	}
}

// diffOpts are the output choices of the diff command.
type diffOpts struct {
	algorithm blame.Algorithm
	unified   bool
	context   int
	follow    lineset.LineSet
}

func cmdDiff(h history, from, to int, o diffOpts) error {
	n := len(h.Revisions)
	for _, i := range []int{from, to} {
		if i < 0 || i >= n {
			return fmt.Errorf("revision %d out of range: %s has revisions 0..%d", i, h.File, n-1)
		}
	}
	differ, err := blame.NewDiffer(o.algorithm)
	if err != nil {
		return err
	}
	if !o.follow.IsEmpty() {
		return followLines(h, from, to, differ, o.follow)
	}

	a, b := h.Revisions[from], h.Revisions[to]
	old := blame.SplitLines(a.Content)
	new := blame.SplitLines(b.Content)
	script := differ.Diff(old, new)

	if o.unified {
		out, err := unified.Print(
			fmt.Sprintf("%s@%s", h.File, shortRev(a.Metadata)),
			fmt.Sprintf("%s@%s", h.File, shortRev(b.Metadata)),
			old, new, script, o.context)
		if err != nil {
			return err
		}
		os.Stdout.Write(out)
		return nil
	}

	changed := lineset.ChangedLines(script)
	deleted := lineset.DeletedLines(script)
	fmt.Printf("%s%s%s  revision %d (%s) → %d (%s)\n", format.Bold, h.File, format.Reset,
		from, shortRev(a.Metadata), to, shortRev(b.Metadata))
	fmt.Printf("  %s+%d%s %s-%d%s  %s%s%s\n\n",
		format.Green, changed.Len(), format.Reset, format.Red, deleted.Len(), format.Reset,
		format.Dim, script, format.Reset)
	if !changed.IsEmpty() {
		fmt.Printf("  changed in %d: L%s\n", to, changed)
	}
	if !deleted.IsEmpty() {
		fmt.Printf("  removed from %d: L%s\n", from, deleted)
	}
	fmt.Println(format.FormatSideBySideDiff(old, new, script, 0))
	return nil
}

// followLines tracks lines of revision from through every revision up to
// to, one edit script per step.
func followLines(h history, from, to int, differ blame.Differ, lines lineset.LineSet) error {
	if from > to {
		return fmt.Errorf("-L follows lines forward: revision %d comes after %d", from, to)
	}
	prev := blame.SplitLines(h.Revisions[from].Content)
	if lines.Max() > len(prev) {
		return fmt.Errorf("line %d is past the end of revision %d (%d lines)", lines.Max(), from, len(prev))
	}

	var scripts []blame.EditScript
	for i := from + 1; i <= to; i++ {
		next := blame.SplitLines(h.Revisions[i].Content)
		scripts = append(scripts, differ.Diff(prev, next))
		prev = next
	}

	adj := linemap.AdjustLinePositions(lines, scripts)
	if adj.Superseded {
		fmt.Printf("L%s of revision %d: %ssuperseded%s by revision %d\n", adj.Original, from, format.Yellow, format.Reset, to)
		return nil
	}
	fmt.Printf("L%s of revision %d → L%s of revision %d\n", adj.Original, from, adj.Current, to)
	if kept := adj.Current.Len(); kept < adj.Original.Len() {
		fmt.Printf("  %s%d of %d lines rewritten or deleted%s\n", format.Dim, adj.Original.Len()-kept, adj.Original.Len(), format.Reset)
	}
	return nil
}

func shortRev(m *revInfo) string {
	if len(m.ID) > 8 {
		return m.ID[:8]
	}
	return m.ID
}
