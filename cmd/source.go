package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jensroland/lineblame/internal/git"
	"github.com/jensroland/lineblame/internal/revstore"
	"github.com/jensroland/lineblame/pkg/blame"
)

// revInfo is what the CLI shows about a revision, whatever its source.
type revInfo struct {
	ID      string `json:"id"`
	Author  string `json:"author,omitempty"`
	Date    string `json:"date,omitempty"`
	Message string `json:"message,omitempty"`
}

// history is the revisions of one file, oldest first.
type history struct {
	File      string
	Source    string // "git", "store" or "files"
	Revisions []blame.Revision[revInfo]
}

// source says where revisions come from.
type source struct {
	git     bool   // paths are files tracked by git
	file    string // file to pick from a revision store
	workers int
}

// loadHistories resolves every path argument to a history. Git files are
// loaded concurrently, at most src.workers at a time.
func loadHistories(ctx context.Context, root string, paths []string, src source) ([]history, error) {
	if !src.git {
		if len(paths) != 1 {
			return nil, fmt.Errorf("expected one store or revision directory, got %d paths", len(paths))
		}
		h, err := loadDir(paths[0], src.file)
		if err != nil {
			return nil, err
		}
		return []history{h}, nil
	}

	out := make([]history, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(src.workers, 1))
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := loadGit(root, p)
			if err != nil {
				return err
			}
			out[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadGit(root, path string) (history, error) {
	rel, err := git.RelPath(path)
	if err != nil {
		return history{}, err
	}
	revs, err := git.Load(root, rel)
	if err != nil {
		return history{}, err
	}
	out := make([]blame.Revision[revInfo], len(revs))
	for i, r := range revs {
		c := r.Metadata
		out[i] = blame.Revision[revInfo]{
			Content:  r.Content,
			Metadata: &revInfo{ID: c.SHA, Author: c.Author, Date: datePart(c.Date), Message: c.Subject},
		}
	}
	return history{File: rel, Source: "git", Revisions: out}, nil
}

// loadDir reads a revision store, or failing that a directory of
// rev<N>.txt files.
func loadDir(dir, file string) (history, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return history{}, err
	}
	if !info.IsDir() {
		return history{}, fmt.Errorf("%s is not a directory (use -git for files in a git repo)", dir)
	}

	var revs []blame.Revision[revstore.Snapshot]
	kind := "files"
	if revstore.IsStore(dir) {
		kind = "store"
		revs, err = revstore.Load(dir, file)
	} else {
		revs, err = revstore.LoadRevisionFiles(dir)
	}
	if err != nil {
		return history{}, err
	}

	out := make([]blame.Revision[revInfo], len(revs))
	for i, r := range revs {
		s := r.Metadata
		out[i] = blame.Revision[revInfo]{
			Content:  r.Content,
			Metadata: &revInfo{ID: s.ID, Author: s.Author, Date: datePart(s.Ts), Message: s.Message},
		}
	}
	name := dir
	if kind == "store" {
		name = revs[0].Metadata.File
	}
	return history{File: name, Source: kind, Revisions: out}, nil
}

// datePart keeps the YYYY-MM-DD prefix of an ISO 8601 timestamp.
func datePart(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
