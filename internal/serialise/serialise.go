// Package serialise reassembles a section mapping into the canonical
// document string: a sequence of **TITLE** blocks in the fixed canonical
// order, blocks separated by one blank line, with consistent spacing.
//
// Serialize is a pure function of the document; an unchanged document
// always serialises to identical output.
package serialise

import (
	"regexp"
	"strings"

	"github.com/openpd/pdraft/internal/core/domain"
)

// Mode selects serialisation behaviour for freshly generated versus
// user-updated documents.
type Mode string

const (
	// ModeGenerated is for AI-generated documents: empty non-summary
	// sections are omitted entirely.
	ModeGenerated Mode = "generated"

	// ModeUpdated is for edited or uploaded documents: empty non-summary
	// sections keep a header line so the editor shows the slot.
	ModeUpdated Mode = "updated"
)

var (
	// HEADER field labels, longest-prefix first so "Lowest Organization"
	// is never split at "Organization". No \b on the left: extraction can
	// fuse a label straight onto the previous value ("GS-0301Position").
	headerFieldRe = regexp.MustCompile(`(?i)(Job Series|Position Title|Lowest Organization|Organization|Supervisory Level|Agency)[ \t]*:`)

	// Embedded numbered-list markers in duty content. The preceding
	// character must not be a digit or hyphen so series codes like
	// "GS-0301. " are left alone.
	dutyMarkerRe = regexp.MustCompile(`([^\n\d-])[ \t]*(\d{1,2}\.[ \t])`)

	finalNewlineRe = regexp.MustCompile(`\n{3,}`)
)

// Serialize renders doc into the canonical document string. Canonical
// slots are emitted first in fixed order; remaining sections follow in
// their mapping order.
func Serialize(doc *domain.Document, mode Mode) string {
	titles := doc.Titles()
	used := make(map[string]bool, len(titles))
	var blocks []string

	for _, slot := range canonicalSlots() {
		title := findSlotTitle(slot, titles, used)
		if title == "" {
			// A lookup miss is not an error; the slot is omitted.
			continue
		}
		used[title] = true
		if block := renderSection(slot.Kind, doc.Get(title), mode); block != "" {
			blocks = append(blocks, block)
		}
	}

	for _, title := range titles {
		if used[title] {
			continue
		}
		kind := SlotPlain
		if _, ok := domain.SummaryPrefix(title); ok {
			kind = SlotSummary
		}
		if block := renderSection(kind, doc.Get(title), mode); block != "" {
			blocks = append(blocks, block)
		}
	}

	out := strings.Join(blocks, "\n\n")
	out = finalNewlineRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// renderSection renders one section as a canonical block.
func renderSection(kind SlotKind, sec *domain.Section, mode Mode) string {
	header := "**" + sec.Title + "**"

	// Summary headers carry their value in the title and never take a
	// body, and are never dropped for having empty content.
	if kind == SlotSummary {
		return header
	}

	content := strings.TrimSpace(sec.Content)
	switch sec.Title {
	case domain.TitleHeader:
		content = explodeHeaderFields(content)
	default:
		if _, isDuty := domain.MajorDutyNumber(sec.Title); isDuty {
			content = explodeDutyMarkers(content)
		}
	}

	if content == "" {
		if mode == ModeGenerated {
			return ""
		}
		return header
	}
	return header + "\n\n" + content
}

// explodeHeaderFields puts each recognised HEADER field label on its own
// line, in the order the fields appear, however the upstream text
// concatenated them.
func explodeHeaderFields(content string) string {
	matches := headerFieldRe.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content
	}

	var segments []string
	if lead := strings.TrimSpace(content[:matches[0][0]]); lead != "" {
		segments = append(segments, lead)
	}
	for i, m := range matches {
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if seg := strings.TrimSpace(content[m[0]:end]); seg != "" {
			segments = append(segments, seg)
		}
	}
	return strings.Join(segments, "\n")
}

// explodeDutyMarkers forces embedded "N. " list markers onto their own
// lines.
func explodeDutyMarkers(content string) string {
	return dutyMarkerRe.ReplaceAllString(content, "$1\n$2")
}
