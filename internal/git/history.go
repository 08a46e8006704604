package git

import (
	"fmt"

	"github.com/jensroland/lineblame/pkg/blame"
)

// Load returns every committed version of file, oldest first, ready to be
// blamed. file is relative to the repository root.
func Load(root, file string) ([]blame.Revision[Commit], error) {
	commits, err := FileHistory(root, file)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, fmt.Errorf("%s has no history", file)
	}

	revisions := make([]blame.Revision[Commit], len(commits))
	for i := range commits {
		content, err := ShowFile(root, commits[i].SHA, file)
		if err != nil {
			return nil, err
		}
		revisions[i] = blame.Revision[Commit]{Content: content, Metadata: &commits[i]}
	}
	return revisions, nil
}
