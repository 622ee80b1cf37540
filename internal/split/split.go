// Package split partitions normalised document text into an ordered
// mapping of section title to content. Three disjoint header patterns
// are recognised: bold uppercase headers, factor evaluation headers and
// whole-line summary headers. Content for a header runs from the end of
// its match to the start of the next header match.
package split

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/openpd/pdraft/internal/core/domain"
)

var (
	// Bold headers: **TITLE** where TITLE is uppercase letters, digits,
	// spaces and a restricted punctuation set.
	boldHeaderRe = regexp.MustCompile(`\*\*([A-Z0-9 \-:&(),%/]+?)\*\*`)

	// Factor headers: "Factor <n>[A|B]? <text> Level <a>-<b>, <points> Points",
	// anchored to a line. The level clause tolerates residual run-together
	// text the normaliser could not separate (no space before "Level" or
	// inside the digits).
	factorHeaderRe = regexp.MustCompile(`(?im)^[ \t]*(?:\*\*)?[ \t]*Factor[ \t]*([1-9])([AB])?[ \t.:\-]*([^\n]*?)[ \t]*(?:Level[ \t]*(\d)[ \t]*-[ \t]*(\d)[ \t]*,?[ \t]*(\d{1,4})[ \t]*Points)?[ \t]*(?:\*\*)?[ \t]*$`)

	// Whole-line summary headers.
	totalPointsRe = regexp.MustCompile(`(?im)^[* \t]*Total[ \t]+Points[: \t]+(\d+)[* \t]*$`)
	finalGradeRe  = regexp.MustCompile(`(?im)^[* \t]*Final[ \t]+Grade[: \t]+GS[- \t]?(\d+)[* \t]*$`)
	gradeRangeRe  = regexp.MustCompile(`(?im)^[* \t]*Grade[ \t]+Range[: \t]+(\d+)[ \t]*-[ \t]*(\d+)[* \t]*$`)

	// Loose fallback scans when no whole-line summary header was found.
	looseTotalPointsRe = regexp.MustCompile(`(?i)Total\s+Points[:\s]*(\d+)`)
	looseFinalGradeRe  = regexp.MustCompile(`(?i)Final\s+Grade[:\s]*GS[-\s]?(\d+)`)
	looseGradeRangeRe  = regexp.MustCompile(`(?i)Grade\s+Range[:\s]*(\d+)\s*-\s*(\d+)`)

	// Stray emphasis markers at line starts/ends inside content.
	strayEmphasisRe = regexp.MustCompile(`(?m)(^[ \t]*\*{2,}|\*{2,}[ \t]*$)`)
)

// headerMatch is one detected header occurrence in the text.
type headerMatch struct {
	start int
	end   int
	title string
}

// Split scans normalised text for section headers and partitions it
// into a Document. The scan is a single left-to-right pass over all
// header matches; overlapping matches resolve to the earliest start.
//
// If no header is found anywhere the whole text is kept under the
// sentinel "Full Document" title for later heuristic identification.
func Split(normalized string) *domain.Document {
	doc := domain.NewDocument()
	text := normalized

	matches := collectHeaders(text)
	if len(matches) == 0 {
		if strings.TrimSpace(text) != "" {
			doc.Set(domain.TitleFullDocument, strings.TrimSpace(text))
		}
		return doc
	}

	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].start
		}
		content := cleanContent(text[m.end:end])
		doc.Set(m.title, content)
	}

	synthesizeSummaries(doc, text)
	fallbackHeader(doc, text)

	return doc
}

// collectHeaders finds all header occurrences of the three patterns and
// returns them ordered by position, dropping any match that starts
// inside an earlier accepted match.
func collectHeaders(text string) []headerMatch {
	var all []headerMatch

	for _, idx := range boldHeaderRe.FindAllStringSubmatchIndex(text, -1) {
		title := strings.TrimSpace(text[idx[2]:idx[3]])
		if title == "" {
			continue
		}
		// Bold factor and summary headers belong to the other patterns.
		if _, ok := domain.FactorKey(title); ok {
			continue
		}
		all = append(all, headerMatch{start: idx[0], end: idx[1], title: title})
	}

	for _, idx := range factorHeaderRe.FindAllStringSubmatchIndex(text, -1) {
		m := submatches(text, idx)
		// A factor header needs a level clause; only the 4A/4B contact
		// split may appear as a bare label. Keeps prose lines that merely
		// mention a factor from being taken for headers.
		if m[4] == "" && m[2] == "" {
			continue
		}
		all = append(all, headerMatch{
			start: idx[0],
			end:   idx[1],
			title: factorTitle(m[1], m[2], m[3], m[4], m[5], m[6]),
		})
	}

	for _, sm := range []struct {
		re     *regexp.Regexp
		format func(m []string) string
	}{
		{totalPointsRe, func(m []string) string {
			return fmt.Sprintf("%s: %s", domain.PrefixTotalPoints, m[1])
		}},
		{finalGradeRe, func(m []string) string {
			return fmt.Sprintf("%s: GS-%s", domain.PrefixFinalGrade, m[1])
		}},
		{gradeRangeRe, func(m []string) string {
			return fmt.Sprintf("%s: %s-%s", domain.PrefixGradeRange, m[1], m[2])
		}},
	} {
		for _, idx := range sm.re.FindAllStringSubmatchIndex(text, -1) {
			all = append(all, headerMatch{
				start: idx[0],
				end:   idx[1],
				title: sm.format(submatches(text, idx)),
			})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].start == all[j].start {
			return all[i].end > all[j].end
		}
		return all[i].start < all[j].start
	})

	// Drop matches that overlap an earlier accepted match.
	var out []headerMatch
	lastEnd := -1
	for _, m := range all {
		if m.start < lastEnd {
			continue
		}
		out = append(out, m)
		lastEnd = m.end
	}
	return out
}

// factorTitle rebuilds a canonical factor title from the regex captures.
// Rebuilding from captures rather than echoing the matched text removes
// residual digit fusion from the title.
func factorTitle(num, sub, freeText, levelA, levelB, points string) string {
	sub = strings.ToUpper(sub)
	levelClause := ""
	if levelA != "" {
		levelClause = fmt.Sprintf(" Level %s-%s, %s Points", levelA, levelB, points)
	}

	// Factor 4A/4B canonicalise to fixed contact-split labels.
	if num == "4" && sub != "" {
		label := domain.Factor4ALabel
		if sub == "B" {
			label = domain.Factor4BLabel
		}
		return label + levelClause
	}

	name := strings.TrimSpace(strings.Trim(freeText, " \t-:.*"))
	if name == "" {
		return fmt.Sprintf("Factor %s%s%s", num, sub, levelClause)
	}
	return fmt.Sprintf("Factor %s%s - %s%s", num, sub, name, levelClause)
}

// cleanContent trims section content and strips stray emphasis markers
// left at line boundaries.
func cleanContent(raw string) string {
	content := strayEmphasisRe.ReplaceAllString(raw, "")
	return strings.TrimSpace(content)
}

// synthesizeSummaries adds zero-content summary sections found by loose
// scanning when no whole-line summary header matched.
func synthesizeSummaries(doc *domain.Document, text string) {
	type loose struct {
		prefix string
		re     *regexp.Regexp
		format func(m []string) string
	}
	for _, l := range []loose{
		{domain.PrefixTotalPoints, looseTotalPointsRe, func(m []string) string {
			return fmt.Sprintf("%s: %s", domain.PrefixTotalPoints, m[1])
		}},
		{domain.PrefixFinalGrade, looseFinalGradeRe, func(m []string) string {
			return fmt.Sprintf("%s: GS-%s", domain.PrefixFinalGrade, m[1])
		}},
		{domain.PrefixGradeRange, looseGradeRangeRe, func(m []string) string {
			return fmt.Sprintf("%s: %s-%s", domain.PrefixGradeRange, m[1], m[2])
		}},
	} {
		if hasSummary(doc, l.prefix) {
			continue
		}
		if m := l.re.FindStringSubmatch(text); m != nil {
			doc.Set(l.format(m), "")
		}
	}
}

func hasSummary(doc *domain.Document, prefix string) bool {
	for _, title := range doc.Titles() {
		if p, ok := domain.SummaryPrefix(title); ok && p == prefix {
			return true
		}
	}
	return false
}

// fallbackHeader synthesises a HEADER section from the first 8 non-blank
// lines when no section titled exactly HEADER exists.
func fallbackHeader(doc *domain.Document, text string) {
	if doc.Has(domain.TitleHeader) {
		return
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
		if len(lines) == 8 {
			break
		}
	}
	if len(lines) == 0 {
		return
	}
	doc.Set(domain.TitleHeader, strings.Join(lines, "\n"))
}

// submatches expands FindAllStringSubmatchIndex offsets into strings,
// with "" for absent groups.
func submatches(text string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := 0; i < len(idx); i += 2 {
		if idx[i] < 0 {
			out[i/2] = ""
			continue
		}
		out[i/2] = text[idx[i]:idx[i+1]]
	}
	return out
}
