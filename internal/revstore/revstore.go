// Package revstore keeps a linear chain of file snapshots on disk: content
// blobs deduplicated by SHA256 and one JSON record per revision.
package revstore

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jensroland/lineblame/pkg/blame"
)

// Snapshot is one recorded revision of a file.
type Snapshot struct {
	ID         string `json:"id"`
	Seq        int    `json:"seq"`         // 0-based position in the file's history
	File       string `json:"file"`        // path as given to Append
	ContentSHA string `json:"content_sha"` // SHA256 of the content blob
	Author     string `json:"author,omitempty"`
	Message    string `json:"message,omitempty"`
	Ts         string `json:"ts"`
}

// Meta describes who recorded a snapshot and why.
type Meta struct {
	Author  string
	Message string
	Time    time.Time // zero means now
}

// Append stores content as the next revision of file.
func Append(dir, file, content string, meta Meta) (Snapshot, error) {
	all, err := ReadAll(dir)
	if err != nil {
		return Snapshot{}, err
	}
	seq := 0
	for _, s := range ForFile(all, file) {
		if s.Seq >= seq {
			seq = s.Seq + 1
		}
	}

	sha, err := WriteBlob(dir, content)
	if err != nil {
		return Snapshot{}, fmt.Errorf("write blob: %w", err)
	}
	ts := meta.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	snap := Snapshot{
		ID:         uuid.New().String(),
		Seq:        seq,
		File:       file,
		ContentSHA: sha,
		Author:     meta.Author,
		Message:    meta.Message,
		Ts:         ts.UTC().Format(time.RFC3339),
	}
	if err := writeSnapshot(dir, snap); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}
	return snap, nil
}

func writeSnapshot(dir string, snap Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, snap.ID+".json"), data, 0o644)
}

// WriteBlob writes content to the blob directory, deduplicated by SHA256.
// Returns the content SHA256 hash.
func WriteBlob(dir string, content string) (string, error) {
	h := sha256.Sum256([]byte(content))
	sha := fmt.Sprintf("%x", h)

	blobDir := filepath.Join(dir, "blobs")
	if err := os.MkdirAll(blobDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(blobDir, sha)
	if _, err := os.Stat(path); err == nil {
		return sha, nil
	}
	return sha, os.WriteFile(path, []byte(content), 0o644)
}

// ReadBlob reads content from the blob directory by SHA256.
func ReadBlob(dir, sha string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "blobs", sha))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IsStore reports whether dir looks like a revision store.
func IsStore(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "blobs"))
	return err == nil && info.IsDir()
}

// ReadAll reads every snapshot record in dir, ordered by file, then
// sequence, then timestamp. Unreadable records are skipped.
func ReadAll(dir string) ([]Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var snaps []Snapshot
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var s Snapshot
		if err := json.Unmarshal(data, &s); err != nil {
			continue
		}
		snaps = append(snaps, s)
	}

	sort.Slice(snaps, func(i, j int) bool {
		a, b := snaps[i], snaps[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		return a.Ts < b.Ts
	})
	return snaps, nil
}

// ForFile returns the snapshots of one file.
func ForFile(snaps []Snapshot, file string) []Snapshot {
	var result []Snapshot
	for _, s := range snaps {
		if s.File == file {
			result = append(result, s)
		}
	}
	return result
}

// Files returns the distinct files in snaps, sorted.
func Files(snaps []Snapshot) []string {
	var files []string
	for _, s := range snaps {
		if len(files) == 0 || files[len(files)-1] != s.File {
			files = append(files, s.File)
		}
	}
	return files
}

// Load reads the history of file from the store at dir, oldest first. An
// empty file name selects the only file in the store.
func Load(dir, file string) ([]blame.Revision[Snapshot], error) {
	all, err := ReadAll(dir)
	if err != nil {
		return nil, err
	}
	if file == "" {
		files := Files(all)
		if len(files) != 1 {
			return nil, fmt.Errorf("store %s holds %d files, pick one with -file", dir, len(files))
		}
		file = files[0]
	}

	snaps := ForFile(all, file)
	if len(snaps) == 0 {
		return nil, fmt.Errorf("no revisions of %s in %s", file, dir)
	}
	revisions := make([]blame.Revision[Snapshot], len(snaps))
	for i := range snaps {
		content, err := ReadBlob(dir, snaps[i].ContentSHA)
		if err != nil {
			return nil, fmt.Errorf("revision %d of %s: %w", snaps[i].Seq, file, err)
		}
		revisions[i] = blame.Revision[Snapshot]{Content: content, Metadata: &snaps[i]}
	}
	return revisions, nil
}

var revFileRe = regexp.MustCompile(`^rev(\d+)\.txt$`)

// LoadRevisionFiles reads rev0.txt, rev1.txt, ... from dir, ordered by
// their number, so rev2.txt comes before rev10.txt.
func LoadRevisionFiles(dir string) ([]blame.Revision[Snapshot], error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var snaps []Snapshot
	for _, entry := range entries {
		m := revFileRe.FindStringSubmatch(entry.Name())
		if entry.IsDir() || m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{ID: strings.TrimSuffix(entry.Name(), ".txt"), Seq: n, File: entry.Name()})
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("no rev<N>.txt files in %s", dir)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Seq < snaps[j].Seq })

	revisions := make([]blame.Revision[Snapshot], len(snaps))
	for i := range snaps {
		data, err := os.ReadFile(filepath.Join(dir, snaps[i].File))
		if err != nil {
			return nil, err
		}
		h := sha256.Sum256(data)
		snaps[i].ContentSHA = fmt.Sprintf("%x", h)
		revisions[i] = blame.Revision[Snapshot]{Content: string(data), Metadata: &snaps[i]}
	}
	return revisions, nil
}

// ShortID returns a short display form of the snapshot ID.
func (s *Snapshot) ShortID() string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}
