package format

import (
	"fmt"
	"strings"
)

// FormatBorderedText renders text inside a bordered box with word wrapping.
// A width of 0 uses the terminal width.
func FormatBorderedText(text, title string, width int) string {
	if width <= 0 {
		width = TermWidth()
	}
	innerW := width - 4
	if innerW < 30 {
		innerW = 30
	}

	var wrapped []string
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			wrapped = append(wrapped, "")
			continue
		}
		wrapped = append(wrapped, wordWrap(paragraph, innerW)...)
	}

	output := []string{topBorder(title, innerW+2)}
	for _, line := range wrapped {
		output = append(output, fmt.Sprintf("\u2502 %s \u2502", padOrTrunc(line, innerW)))
	}
	output = append(output, fmt.Sprintf("\u2514%s\u2518", strings.Repeat("\u2500", innerW+2)))

	return strings.Join(output, "\n")
}

func topBorder(title string, w int) string {
	if title == "" {
		return fmt.Sprintf("\u250c%s\u2510", strings.Repeat("\u2500", w))
	}
	lbl := fmt.Sprintf("\u2500 %s ", title)
	return fmt.Sprintf("\u250c%s%s\u2510", lbl, strings.Repeat("\u2500", max(0, w-runeLen(lbl))))
}

// wordWrap wraps text to the given width, breaking at word boundaries.
func wordWrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if runeLen(current)+1+runeLen(word) <= width {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	lines = append(lines, current)
	return lines
}
