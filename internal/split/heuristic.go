package split

import (
	"regexp"
	"strings"

	"github.com/openpd/pdraft/internal/core/domain"
)

var (
	gradeCodeRe   = regexp.MustCompile(`(?i)\bGS[-\s]?\d{1,2}\b|\b[A-Z]{2}-\d{4}\b`)
	terminalRe    = regexp.MustCompile(`[.!?]$`)
	introKeywords = []string{"incumbent", "serves as", "responsible for", "position"}
	dutyKeywords  = []string{"duties", "duty", "performs", "responsibilities"}
	dutyStopWords = []string{"factor", "condition", "title and series"}
)

// IdentifyBasicSections heuristically partitions text that had no
// recognisable section headers. It scans leading lines for
// organisation/header patterns, then introduction-like text, then a
// duties block. If nothing is identified the whole text stays under the
// "Full Document" sentinel for manual correction.
func IdentifyBasicSections(text string) *domain.Document {
	doc := domain.NewDocument()
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return doc
	}

	lines := strings.Split(trimmed, "\n")

	headerEnd := scanHeaderLines(lines)
	introStart, introEnd := scanIntroLines(lines, headerEnd)
	dutiesStart, dutiesEnd := scanDutyLines(lines, introEnd)

	if headerEnd == 0 && introStart < 0 && dutiesStart < 0 {
		doc.Set(domain.TitleFullDocument, trimmed)
		return doc
	}

	if headerEnd > 0 {
		doc.Set(domain.TitleHeader, joinLines(lines[:headerEnd]))
	}
	if introStart >= 0 {
		doc.Set(domain.TitleIntroduction, joinLines(lines[introStart:introEnd]))
	}
	if dutiesStart >= 0 {
		doc.Set(domain.TitleMajorDuties, joinLines(lines[dutiesStart:dutiesEnd]))
	}

	return doc
}

// scanHeaderLines returns the count of leading lines that look like
// organisation/header material: mention a Department, carry a grade
// code, or are short lines without terminal punctuation.
func scanHeaderLines(lines []string) int {
	count := 0
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if l == "" {
			if count > 0 {
				break
			}
			continue
		}
		headerLike := strings.Contains(l, "Department") ||
			gradeCodeRe.MatchString(l) ||
			(len(l) < 60 && !terminalRe.MatchString(l))
		if !headerLike {
			break
		}
		count++
		if count == 8 {
			break
		}
	}
	return count
}

// scanIntroLines finds an introduction-like block after the header
// lines, stopping at the first sentence-terminated line.
func scanIntroLines(lines []string, from int) (int, int) {
	start := -1
	for i := from; i < len(lines); i++ {
		l := strings.ToLower(strings.TrimSpace(lines[i]))
		if l == "" {
			continue
		}
		if start < 0 {
			for _, kw := range introKeywords {
				if strings.Contains(l, kw) {
					start = i
					break
				}
			}
			if start < 0 {
				continue
			}
		}
		if terminalRe.MatchString(strings.TrimSpace(lines[i])) {
			return start, i + 1
		}
	}
	if start < 0 {
		return -1, -1
	}
	return start, len(lines)
}

// scanDutyLines finds a duties block after the introduction, terminating
// at the first line mentioning factors, conditions or the series
// determination.
func scanDutyLines(lines []string, from int) (int, int) {
	if from < 0 {
		from = 0
	}
	start := -1
	for i := from; i < len(lines); i++ {
		l := strings.ToLower(strings.TrimSpace(lines[i]))
		if l == "" {
			continue
		}
		if start < 0 {
			for _, kw := range dutyKeywords {
				if strings.Contains(l, kw) {
					start = i
					break
				}
			}
			continue
		}
		for _, stop := range dutyStopWords {
			if strings.Contains(l, stop) {
				return start, i
			}
		}
	}
	if start < 0 {
		return -1, -1
	}
	return start, len(lines)
}

func joinLines(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, "\n")
}
