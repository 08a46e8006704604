package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jensroland/lineblame/internal/debug"
	"github.com/jensroland/lineblame/internal/format"
	"github.com/jensroland/lineblame/internal/git"
	"github.com/jensroland/lineblame/internal/index"
	"github.com/jensroland/lineblame/internal/lineset"
	"github.com/jensroland/lineblame/pkg/blame"
)

// blameOpts are the output choices of the blame command.
type blameOpts struct {
	algorithm blame.Algorithm
	lines     string
	json      bool
	summary   bool
	verify    bool
	db        string
}

// RunBlame handles the default mode (no subcommand).
func RunBlame(args []string) {
	fs := flag.NewFlagSet("lineblame", flag.ExitOnError)

	algorithm := fs.String("algorithm", "", "Diff algorithm: myers or patience (default from config, else myers)")
	line := fs.String("L", "", "Only show these lines (42, 10:20, 10-20 or 5,7-8)")
	jsonOutput := fs.Bool("json", false, "Output results as JSON")
	dbFlag := fs.String("db", "", "Save the blame to this SQLite index")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	useGit := fs.Bool("git", false, "Paths are files tracked by git; blame their first-parent history")
	file := fs.String("file", "", "File to blame from a revision store holding several")
	summary := fs.Bool("summary", false, "Show lines owned per revision instead of every line")
	verify := fs.Bool("verify", false, "With -git: compare the result with git blame")
	workers := fs.Int("workers", 0, "Files loaded in parallel with -git (default from config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `lineblame: attribute every line of a file to the revision that introduced it.

Usage:
    lineblame <dir>                          # blame a revision store or a dir of rev<N>.txt
    lineblame -file <name> <store>           # pick one file from a store
    lineblame -git <file>...                 # blame files from their git history
    lineblame -L <start>:<end> <dir>         # only some lines
    lineblame -summary <dir>                 # lines owned per revision
    lineblame -algorithm patience <dir>      # anchor on unique lines
    lineblame -json <dir>                    # machine-readable JSON output
    lineblame -db <path> <dir>               # also save the result to a SQLite index
    lineblame -git -verify <file>            # cross-check against git blame

Subcommands:
    lineblame record [-author a] [-message m] <store> <file>
    lineblame diff [-unified] [-context n] [-L lines] <dir> <i> <j>
    lineblame stats [-db path] [-json]
    lineblame log [-n lines] [-entries]
    lineblame --version
`)
		fs.PrintDefaults()
	}

	fs.Parse(reorderArgs(fs, args))

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	e := loadEnv(*noColor)
	algo, err := e.algorithm(*algorithm)
	if err != nil {
		fatal(err)
	}
	if *workers <= 0 {
		*workers = e.cfg.Workers
	}

	src := source{git: *useGit, file: *file, workers: *workers}
	opts := blameOpts{
		algorithm: algo,
		lines:     *line,
		json:      *jsonOutput,
		summary:   *summary,
		verify:    *verify,
		db:        e.dbPath(*dbFlag),
	}
	if err := cmdBlame(context.Background(), e, fs.Args(), src, opts); err != nil {
		fatal(err)
	}
}

// stepStat describes the edit script between two consecutive revisions.
type stepStat struct {
	Old      int `json:"old"`
	New      int `json:"new"`
	Kept     int `json:"kept"`
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// fileReport is the blame of one file as printed with -json.
type fileReport struct {
	File      string             `json:"file"`
	Source    string             `json:"source"`
	Algorithm string             `json:"algorithm"`
	Revisions int                `json:"revisions"`
	Total     int                `json:"total_lines"`
	Lines     []format.BlameLine `json:"lines,omitempty"`
	Owners    []format.Ownership `json:"owners,omitempty"`
	Agree     *int               `json:"git_blame_agree,omitempty"`
}

type blamed struct {
	res   *blame.Result[revInfo]
	steps []stepStat
}

func cmdBlame(ctx context.Context, e *env, args []string, src source, o blameOpts) error {
	var sel lineset.LineSet
	if o.lines != "" {
		var err error
		if sel, err = lineset.FromString(o.lines); err != nil {
			return err
		}
	}
	if o.verify && !src.git {
		return fmt.Errorf("-verify needs -git")
	}

	histories, err := loadHistories(ctx, e.root, args, src)
	if err != nil {
		return err
	}
	results, err := blameAll(ctx, histories, o.algorithm, src.workers)
	if err != nil {
		return err
	}

	var reports []fileReport
	for i, h := range histories {
		r := results[i]
		lines := blameLines(h, r.res)

		debug.Log(e.paths.CacheDir, debug.BlameLog, "blame "+h.File, map[string]interface{}{
			"source":    h.Source,
			"algorithm": o.algorithm.String(),
			"revisions": len(h.Revisions),
			"lines":     len(lines),
			"owners":    len(r.res.Owners()),
			"steps":     r.steps,
		})

		if o.db != "" {
			if err := saveIndex(o.db, h, r.res); err != nil {
				return fmt.Errorf("save index: %w", err)
			}
		}

		report := fileReport{
			File:      h.File,
			Source:    h.Source,
			Algorithm: o.algorithm.String(),
			Revisions: len(h.Revisions),
			Total:     len(lines),
		}
		if o.verify {
			agree, err := gitAgreement(e.root, h.File, lines)
			if err != nil {
				return err
			}
			report.Agree = &agree
		}

		if !sel.IsEmpty() {
			if sel.Max() > len(lines) {
				return fmt.Errorf("line %d is past the end of %s (%d lines)", sel.Max(), h.File, len(lines))
			}
			lines = selectLines(lines, sel)
		}
		if o.summary {
			report.Owners = format.Summarize(lines)
		} else {
			report.Lines = lines
		}
		reports = append(reports, report)
	}

	if o.json {
		b, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	for _, r := range reports {
		printReport(r)
	}
	return nil
}

// blameAll blames every history, at most workers at a time.
func blameAll(ctx context.Context, histories []history, algo blame.Algorithm, workers int) ([]blamed, error) {
	out := make([]blamed, len(histories))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, h := range histories {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			differ, err := blame.NewDiffer(algo)
			if err != nil {
				return err
			}
			var steps []stepStat
			counting := blame.DifferFunc(func(old, new []string) blame.EditScript {
				s := differ.Diff(old, new)
				steps = append(steps, statOf(s))
				return s
			})
			res, err := blame.BlameWithDiffer(h.Revisions, counting)
			if err != nil {
				return fmt.Errorf("%s: %w", h.File, err)
			}
			out[i] = blamed{res: res, steps: steps}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func statOf(s blame.EditScript) stepStat {
	st := stepStat{Old: s.OldLen(), New: s.NewLen()}
	for _, e := range s {
		if e.Op == blame.OpEqual {
			st.Kept += e.New
			continue
		}
		st.Inserted += e.New
		st.Deleted += e.Old
	}
	return st
}

// blameLines turns a result into display rows. Rev is the position of the
// owning revision in h.
func blameLines(h history, res *blame.Result[revInfo]) []format.BlameLine {
	seq := make(map[*revInfo]int, len(h.Revisions))
	for i, r := range h.Revisions {
		seq[r.Metadata] = i
	}
	lines := make([]format.BlameLine, 0, res.Len())
	for i, l := range res.All() {
		m := l.Revision
		lines = append(lines, format.BlameLine{
			Number:  i + 1,
			Content: l.Content,
			Rev:     seq[m],
			RevID:   m.ID,
			Author:  m.Author,
			Date:    m.Date,
		})
	}
	return lines
}

func selectLines(lines []format.BlameLine, sel lineset.LineSet) []format.BlameLine {
	var out []format.BlameLine
	for _, l := range lines {
		if sel.Contains(l.Number) {
			out = append(out, l)
		}
	}
	return out
}

func saveIndex(path string, h history, res *blame.Result[revInfo]) error {
	db, err := index.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	revs, lines := index.FromResult(h.File, h.Revisions, res, func(_ int, m *revInfo) index.RevisionRow {
		return index.RevisionRow{RevID: m.ID, Author: m.Author, Message: m.Message, Ts: m.Date}
	})
	return index.Save(db, h.File, revs, lines)
}

// gitAgreement counts the lines whose owner matches what git blame reports
// for the same file at HEAD.
func gitAgreement(root, file string, lines []format.BlameLine) (int, error) {
	entries, err := git.BlameFile(root, "HEAD", file)
	if err != nil {
		return 0, err
	}
	agree := 0
	for _, l := range lines {
		if e, ok := entries[l.Number]; ok && e.SHA == l.RevID {
			agree++
		}
	}
	return agree, nil
}

func printReport(r fileReport) {
	header := fmt.Sprintf("%d revisions, %d lines, %s diff", r.Revisions, r.Total, r.Algorithm)
	if r.Agree != nil {
		header += fmt.Sprintf("\n%d of %d lines agree with git blame", *r.Agree, r.Total)
	}
	fmt.Println(format.FormatBorderedText(header, r.File, 0))

	if r.Owners != nil {
		fmt.Print(format.FormatOwnership(r.Owners, r.Total))
		return
	}
	if len(r.Lines) == 0 {
		fmt.Printf("%s(no lines)%s\n", format.Dim, format.Reset)
		return
	}
	fmt.Print(format.FormatBlame(r.Lines))
}
