package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jensroland/lineblame/internal/lineset"
)

// BlameLine is one display row of a blame.
type BlameLine struct {
	Number  int    `json:"line"` // 1-based
	Content string `json:"content"`
	Rev     int    `json:"revision"` // position of the owning revision in the history
	RevID   string `json:"id"`
	Author  string `json:"author,omitempty"`
	Date    string `json:"date,omitempty"`
}

const maxAuthorWidth = 20

// FormatBlame renders blame lines as a table: revision id, author, date,
// line number and content, colored per owning revision.
func FormatBlame(lines []BlameLine) string {
	authorW, numW := 0, 1
	for _, l := range lines {
		authorW = max(authorW, runeLen(l.Author))
		numW = max(numW, len(strconv.Itoa(l.Number)))
	}
	authorW = min(authorW, maxAuthorWidth)

	var b strings.Builder
	for _, l := range lines {
		color := ownerColor(l.Rev)
		b.WriteString(color + padOrTrunc(shortID(l.RevID), 8) + Reset)
		if authorW > 0 {
			b.WriteString(" " + Blue + padOrTrunc(l.Author, authorW) + Reset)
		}
		if l.Date != "" {
			b.WriteString(" " + Dim + padOrTrunc(l.Date, 10) + Reset)
		}
		fmt.Fprintf(&b, " %*d\u2502 %s\n", numW, l.Number, l.Content)
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Ownership is how many lines of the final revision one revision owns.
type Ownership struct {
	Rev    int             `json:"revision"`
	RevID  string          `json:"id"`
	Author string          `json:"author,omitempty"`
	Lines  lineset.LineSet `json:"lines"`
}

// Summarize groups blame lines by owning revision, in revision order.
// Revisions that own nothing are left out.
func Summarize(lines []BlameLine) []Ownership {
	byRev := make(map[int][]int)
	first := make(map[int]BlameLine)
	var order []int
	for _, l := range lines {
		if _, ok := byRev[l.Rev]; !ok {
			order = append(order, l.Rev)
			first[l.Rev] = l
		}
		byRev[l.Rev] = append(byRev[l.Rev], l.Number)
	}

	sort.Ints(order)
	out := make([]Ownership, len(order))
	for i, rev := range order {
		out[i] = Ownership{Rev: rev, RevID: first[rev].RevID, Author: first[rev].Author, Lines: lineset.New(byRev[rev]...)}
	}
	return out
}

// FormatOwnership renders a per-revision summary with share of the file
// and the owned lines in compact notation.
func FormatOwnership(owners []Ownership, total int) string {
	var b strings.Builder
	for _, o := range owners {
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(o.Lines.Len()) / float64(total)
		}
		fmt.Fprintf(&b, "%s%-8s%s %5d lines %5.1f%%  %s%s%s",
			ownerColor(o.Rev), shortID(o.RevID), Reset, o.Lines.Len(), pct, Dim, "L"+o.Lines.String(), Reset)
		if o.Author != "" {
			fmt.Fprintf(&b, "  %s%s%s", Blue, o.Author, Reset)
		}
		b.WriteString("\n")
	}
	return b.String()
}
