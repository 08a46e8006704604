package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jensroland/lineblame/internal/lineset"
	"github.com/jensroland/lineblame/pkg/blame"
)

// RevisionRow mirrors a row from the revisions table.
type RevisionRow struct {
	File    string
	Seq     int
	RevID   string
	Author  string
	Message string
	Ts      string
	Owned   string // lines of the final revision it owns, "5,7-8,12"
}

// LineRow mirrors a row from the lines table.
type LineRow struct {
	File    string
	Line    int // 1-based
	Content string
	RevSeq  int
}

// BlameRow is a line joined with the revision that owns it.
type BlameRow struct {
	Line    int
	Content string
	Rev     RevisionRow
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS revisions (
		file TEXT NOT NULL,
		seq INTEGER NOT NULL,
		rev_id TEXT NOT NULL,
		author TEXT,
		message TEXT,
		ts TEXT,
		owned TEXT,
		PRIMARY KEY (file, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS lines (
		file TEXT NOT NULL,
		line INTEGER NOT NULL,
		content TEXT NOT NULL,
		rev_seq INTEGER NOT NULL,
		PRIMARY KEY (file, line)
	)`,
	"CREATE INDEX IF NOT EXISTS idx_lines_rev ON lines(file, rev_seq)",
	"CREATE INDEX IF NOT EXISTS idx_revisions_author ON revisions(author)",
}

// Open returns a database connection with the schema in place.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return db, nil
}

// FromResult flattens a blame result into rows. describe supplies the
// stored fields of each revision; seq is its position in revisions.
// A metadata pointer shared by several revisions maps to the last of them.
func FromResult[T any](file string, revisions []blame.Revision[T], res *blame.Result[T], describe func(seq int, meta *T) RevisionRow) ([]RevisionRow, []LineRow) {
	seqOf := make(map[*T]int, len(revisions))
	for i, r := range revisions {
		seqOf[r.Metadata] = i
	}

	owned := make(map[int][]int)
	lines := make([]LineRow, 0, res.Len())
	for i, l := range res.All() {
		seq := seqOf[l.Revision]
		owned[seq] = append(owned[seq], i)
		lines = append(lines, LineRow{File: file, Line: i + 1, Content: l.Content, RevSeq: seq})
	}

	revs := make([]RevisionRow, len(revisions))
	for i, r := range revisions {
		row := describe(i, r.Metadata)
		row.File = file
		row.Seq = i
		row.Owned = lineset.FromIndexes(owned[i]).String()
		revs[i] = row
	}
	return revs, lines
}

// Save replaces everything stored for file in one transaction.
func Save(db *sql.DB, file string, revs []RevisionRow, lines []LineRow) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{"DELETE FROM revisions WHERE file = ?", "DELETE FROM lines WHERE file = ?"} {
		if _, err := tx.Exec(q, file); err != nil {
			return fmt.Errorf("clear %s: %w", file, err)
		}
	}

	revStmt, err := tx.Prepare(`
		INSERT INTO revisions (file, seq, rev_id, author, message, ts, owned)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer revStmt.Close()
	for _, r := range revs {
		if _, err := revStmt.Exec(file, r.Seq, r.RevID, r.Author, r.Message, r.Ts, r.Owned); err != nil {
			return fmt.Errorf("insert revision %d: %w", r.Seq, err)
		}
	}

	lineStmt, err := tx.Prepare(`INSERT INTO lines (file, line, content, rev_seq) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer lineStmt.Close()
	for _, l := range lines {
		if _, err := lineStmt.Exec(file, l.Line, l.Content, l.RevSeq); err != nil {
			return fmt.Errorf("insert line %d: %w", l.Line, err)
		}
	}

	return tx.Commit()
}

// FileLines returns the stored blame of file in line order.
func FileLines(db *sql.DB, file string) ([]BlameRow, error) {
	rows, err := db.Query(`
		SELECT l.line, l.content, r.file, r.seq, r.rev_id,
		       COALESCE(r.author, ''), COALESCE(r.message, ''), COALESCE(r.ts, ''), COALESCE(r.owned, '')
		FROM lines l JOIN revisions r ON r.file = l.file AND r.seq = l.rev_seq
		WHERE l.file = ?
		ORDER BY l.line
	`, file)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BlameRow
	for rows.Next() {
		var b BlameRow
		if err := rows.Scan(&b.Line, &b.Content, &b.Rev.File, &b.Rev.Seq, &b.Rev.RevID,
			&b.Rev.Author, &b.Rev.Message, &b.Rev.Ts, &b.Rev.Owned); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Count is a labelled line count.
type Count struct {
	Name  string `json:"name"`
	Lines int    `json:"lines"`
}

// Stats summarizes the whole index.
type Stats struct {
	Files     int     `json:"files"`
	Revisions int     `json:"revisions"`
	Lines     int     `json:"lines"`
	ByAuthor  []Count `json:"by_author"`
	ByFile    []Count `json:"by_file"`
}

// ReadStats computes line ownership totals across every indexed file.
func ReadStats(db *sql.DB) (*Stats, error) {
	s := &Stats{}
	if err := db.QueryRow("SELECT COUNT(DISTINCT file), COUNT(*) FROM revisions").Scan(&s.Files, &s.Revisions); err != nil {
		return nil, err
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM lines").Scan(&s.Lines); err != nil {
		return nil, err
	}

	var err error
	s.ByAuthor, err = counts(db, `
		SELECT COALESCE(NULLIF(r.author, ''), '(unknown)') AS a, COUNT(*) AS n
		FROM lines l JOIN revisions r ON r.file = l.file AND r.seq = l.rev_seq
		GROUP BY a ORDER BY n DESC, a
	`)
	if err != nil {
		return nil, err
	}
	s.ByFile, err = counts(db, "SELECT file, COUNT(*) AS n FROM lines GROUP BY file ORDER BY n DESC, file")
	if err != nil {
		return nil, err
	}
	return s, nil
}

func counts(db *sql.DB, query string) ([]Count, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Name, &c.Lines); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
