package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jensroland/lineblame/internal/git"
)

// Paths holds the locations lineblame reads and writes for a project.
type Paths struct {
	Root       string // project root (git top level, or the working directory)
	GitDir     string // .git/ (resolved for worktrees)
	CacheDir   string // .git/lineblame/, or .lineblame/ outside git
	LogDir     string // <cache>/logs/
	IndexDB    string // <cache>/index.db
	ConfigFile string // .lineblame.toml
}

// FindRoot returns the project root, preferring LINEBLAME_DIR if set. Outside
// a git repository the working directory is the root.
func FindRoot() (string, error) {
	if dir := os.Getenv("LINEBLAME_DIR"); dir != "" {
		return dir, nil
	}
	if top, err := git.RevParseTopLevel(); err == nil {
		return top, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine project root: %w", err)
	}
	return wd, nil
}

// NewPaths constructs all path constants from a project root.
func NewPaths(root string) Paths {
	gitDir := resolveGitDir(root)
	cacheDir := filepath.Join(root, ".lineblame")
	if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
		cacheDir = filepath.Join(gitDir, "lineblame")
	}
	return Paths{
		Root:       root,
		GitDir:     gitDir,
		CacheDir:   cacheDir,
		LogDir:     filepath.Join(cacheDir, "logs"),
		IndexDB:    filepath.Join(cacheDir, "index.db"),
		ConfigFile: filepath.Join(root, ".lineblame.toml"),
	}
}

// resolveGitDir follows a worktree's ".git" pointer file. Anything else
// resolves to <root>/.git.
func resolveGitDir(root string) string {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil || info.IsDir() {
		return dotGit
	}
	data, err := os.ReadFile(dotGit)
	if err != nil {
		return dotGit
	}
	line := strings.TrimSpace(string(data))
	target, ok := strings.CutPrefix(line, "gitdir: ")
	if !ok {
		return dotGit
	}
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(root, target)
}
