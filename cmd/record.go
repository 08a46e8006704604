package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/jensroland/lineblame/internal/git"
	"github.com/jensroland/lineblame/internal/revstore"
)

// RunRecord handles "lineblame record": append a snapshot of a file to a
// revision store.
func RunRecord(args []string) {
	fs := flag.NewFlagSet("lineblame record", flag.ExitOnError)
	author := fs.String("author", "", "Author of the snapshot (default: git user.name)")
	message := fs.String("message", "", "Note stored with the snapshot")
	name := fs.String("as", "", "Name to record the file under (default: the path as given)")
	fs.Parse(reorderArgs(fs, args))

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: lineblame record [-author a] [-message m] [-as name] <store> <file>")
		os.Exit(2)
	}
	if *author == "" {
		*author = git.Author()
	}
	if err := cmdRecord(fs.Arg(0), fs.Arg(1), *name, revstore.Meta{Author: *author, Message: *message}); err != nil {
		fatal(err)
	}
}

func cmdRecord(store, path, name string, meta revstore.Meta) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if name == "" {
		name = path
	}
	snap, err := revstore.Append(store, name, string(data), meta)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %s revision %d as %s\n", snap.File, snap.Seq, snap.ShortID())
	return nil
}
