package format

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jensroland/lineblame/pkg/blame"
)

// maxDiffRows caps how many rows FormatSideBySideDiff prints.
const maxDiffRows = 40

type diffRow struct {
	tag   string // "equal", "delete", "insert", "replace"
	left  *string
	right *string
}

// diffRows lays old and new out in rows following script. Runs of changes
// are paired up line by line; leftovers become pure deletes or inserts.
func diffRows(old, new []string, script blame.EditScript) []diffRow {
	var rows []diffRow
	var oldBuf, newBuf []string

	flushBuf := func() {
		for i := 0; i < max(len(oldBuf), len(newBuf)); i++ {
			var o, n *string
			tag := "replace"
			if i < len(oldBuf) {
				o = &oldBuf[i]
			}
			if i < len(newBuf) {
				n = &newBuf[i]
			}
			if o == nil {
				tag = "insert"
			} else if n == nil {
				tag = "delete"
			}
			rows = append(rows, diffRow{tag: tag, left: o, right: n})
		}
		oldBuf = nil
		newBuf = nil
	}

	oi, ni := 0, 0
	for _, e := range script {
		if e.Op == blame.OpEqual {
			flushBuf()
			for k := 0; k < e.Old; k++ {
				rows = append(rows, diffRow{tag: "equal", left: &old[oi+k], right: &new[ni+k]})
			}
		} else {
			oldBuf = append(oldBuf, old[oi:oi+e.Old]...)
			newBuf = append(newBuf, new[ni:ni+e.New]...)
		}
		oi += e.Old
		ni += e.New
	}
	flushBuf()
	return rows
}

// FormatSideBySideDiff renders two revisions side by side with box-drawing
// borders, aligned by script. Changed characters inside replaced lines are
// highlighted. A width of 0 uses the terminal width.
func FormatSideBySideDiff(old, new []string, script blame.EditScript, width int) string {
	if width <= 0 {
		width = TermWidth()
	}
	colW := (width - 7) / 2
	if colW < 20 {
		colW = 20
	}

	rows := diffRows(old, new, script)
	totalRows := len(rows)
	truncated := totalRows > maxDiffRows
	if truncated {
		rows = rows[:maxDiffRows]
	}

	blank := strings.Repeat(" ", colW)
	var output []string

	lblL := "\u2500 Before "
	lblR := "\u2500 After "
	output = append(output, fmt.Sprintf("\u250c%s%s\u252c%s%s\u2510",
		lblL, strings.Repeat("\u2500", colW+2-runeLen(lblL)),
		lblR, strings.Repeat("\u2500", colW+2-runeLen(lblR))))

	for _, r := range rows {
		var left, right string
		switch r.tag {
		case "equal":
			left = Dim + padOrTrunc(expandTabs(*r.left), colW) + Reset
			right = Dim + padOrTrunc(expandTabs(*r.right), colW) + Reset
		case "delete":
			left, right = Red+padOrTrunc(expandTabs(*r.left), colW)+Reset, blank
		case "insert":
			left, right = blank, Green+padOrTrunc(expandTabs(*r.right), colW)+Reset
		case "replace":
			left, right = highlightPair(expandTabs(*r.left), expandTabs(*r.right), colW)
		}
		output = append(output, fmt.Sprintf("\u2502 %s \u2502 %s \u2502", left, right))
	}

	output = append(output, fmt.Sprintf("\u2514%s\u2534%s\u2518",
		strings.Repeat("\u2500", colW+2), strings.Repeat("\u2500", colW+2)))

	if truncated {
		output = append(output, fmt.Sprintf("  %s\u2026 %d more lines not shown%s",
			Dim, totalRows-maxDiffRows, Reset))
	}

	return strings.Join(output, "\n")
}

// highlightPair colors a replaced line pair, emphasizing the characters
// that differ. Both sides are truncated to w before diffing so padding
// stays aligned.
func highlightPair(oldLine, newLine string, w int) (string, string) {
	oldLine = truncate(oldLine, w)
	newLine = truncate(newLine, w)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(oldLine, newLine, false))

	var left, right strings.Builder
	left.WriteString(Red)
	right.WriteString(Green)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			left.WriteString(d.Text)
			right.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			left.WriteString(Bold + d.Text + Reset + Red)
		case diffmatchpatch.DiffInsert:
			right.WriteString(Bold + d.Text + Reset + Green)
		}
	}
	left.WriteString(Reset + strings.Repeat(" ", w-runeLen(oldLine)))
	right.WriteString(Reset + strings.Repeat(" ", w-runeLen(newLine)))
	return left.String(), right.String()
}

func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", "    ")
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s
}

func padOrTrunc(s string, w int) string {
	s = truncate(s, w)
	return s + strings.Repeat(" ", w-runeLen(s))
}

func runeLen(s string) int {
	return len([]rune(s))
}
