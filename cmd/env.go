package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jensroland/lineblame/internal/config"
	"github.com/jensroland/lineblame/internal/format"
	"github.com/jensroland/lineblame/internal/project"
	"github.com/jensroland/lineblame/pkg/blame"
)

// env is what every command needs: where the project lives and how it is
// configured.
type env struct {
	root  string
	paths project.Paths
	cfg   *config.Config
}

func loadEnv(noColor bool) *env {
	root, err := project.FindRoot()
	if err != nil {
		fatal(err)
	}
	paths := project.NewPaths(root)
	cfg, err := config.Read(paths.ConfigFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	format.SetColor(!noColor && cfg.UseColor(format.StdoutIsTerminal()))
	return &env{root: root, paths: paths, cfg: cfg}
}

// algorithm resolves the -algorithm flag, falling back to the config.
func (e *env) algorithm(flagValue string) (blame.Algorithm, error) {
	if flagValue != "" {
		return blame.ParseAlgorithm(flagValue)
	}
	opts, err := e.cfg.Options()
	if err != nil {
		return 0, err
	}
	return opts.Algorithm, nil
}

// dbPath resolves the index location: the flag, then the config. Relative
// config paths are taken from the project root. Empty means no index.
func (e *env) dbPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if e.cfg.DB == "" || filepath.IsAbs(e.cfg.DB) {
		return e.cfg.DB
	}
	return filepath.Join(e.root, e.cfg.DB)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

// reorderArgs moves flags before positional args so flag.Parse works
// regardless of argument order (e.g. "dir -L 42" → "-L 42 dir").
func reorderArgs(fs *flag.FlagSet, args []string) []string {
	var flags, positional []string
	i := 0
	for i < len(args) {
		a := args[i]
		if a == "--" {
			return append(append(flags, "--"), append(positional, args[i+1:]...)...)
		}
		if len(a) > 1 && a[0] == '-' {
			flags = append(flags, a)
			name := strings.TrimLeft(a, "-")
			if !strings.Contains(name, "=") && !isBoolFlag(fs, name) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, a)
		}
		i++
	}
	return append(flags, positional...)
}

func isBoolFlag(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
