// Package paragraph rejoins text lines broken mid-sentence by
// extraction tools into coherent paragraphs.
package paragraph

import (
	"regexp"
	"strings"
)

var (
	// A new enumerated item: "1. " at line start.
	enumItemRe = regexp.MustCompile(`^\d+\.\s`)

	// A bullet item: "* " or "- " at line start.
	bulletItemRe = regexp.MustCompile(`^[*-]\s`)
)

// terminalPunctuation marks a line as sentence-final.
func terminalPunctuation(line string) bool {
	switch line[len(line)-1] {
	case '.', '!', '?', ')':
		return true
	}
	return false
}

// startsNewItem reports whether the line begins an enumerated or
// bulleted item.
func startsNewItem(line string) bool {
	return enumItemRe.MatchString(line) || bulletItemRe.MatchString(line)
}

// Repair greedily joins consecutive lines into paragraphs. A new
// paragraph starts when the accumulated text ends in terminal
// punctuation or the current line begins a new list item; otherwise the
// line break is treated as a mid-sentence wrap artifact and the line is
// appended with a single space. Paragraphs are joined with a blank line.
//
// Repair is pure and empty input yields empty output.
func Repair(content string) string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	var paragraphs []string
	current := lines[0]
	for _, line := range lines[1:] {
		if terminalPunctuation(current) || startsNewItem(line) {
			paragraphs = append(paragraphs, current)
			current = line
			continue
		}
		current += " " + line
	}
	paragraphs = append(paragraphs, current)

	return strings.Join(paragraphs, "\n\n")
}
