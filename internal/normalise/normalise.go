// Package normalise repairs whitespace, dash variants and run-together
// tokens in raw document text before structural parsing. Raw text
// arrives either from the AI generation stream or from file text
// extraction, and both introduce their own defects: fused tokens from
// streaming, odd unicode from PDF extraction.
//
// Normalize is a pure best-effort function. It never fails; malformed
// input comes out as unchanged as possible.
package normalise

import (
	"regexp"
	"strings"
)

var (
	// 3+ newlines collapse to a single blank line.
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)

	// En dash, em dash, horizontal bar, minus sign.
	dashRe = regexp.MustCompile("[–—―−]")

	// "Factor4A" -> "Factor 4A".
	factorFusionRe = regexp.MustCompile(`(?i)\b(Factor)(\d)`)

	// "1250Points" -> "1250 Points".
	pointsFusionRe = regexp.MustCompile(`(?i)(\d)(Points)\b`)

	// "Level 1-71250, 0 Points" -> "Level 1-7, 1250 Points".
	// The last 3-4 digits of the fused token are the point total; the
	// digit after the dash is the second level digit. Point totals are
	// assumed to be 3-4 digits; a 5-digit total would misparse and is a
	// documented boundary of this repair.
	levelFusionRe = regexp.MustCompile(`(?i)\b(Level)\s*(\d)\s*-\s*(\d)(\d{3,4})(?:\s*,\s*\d+\s*Points|\s*Points)?`)

	trailingSpaceRe = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Normalize repairs raw document text for structural parsing.
// It unifies line endings, strips invisible unicode, normalises dash
// variants to hyphens, repairs known run-together tokens and caps blank
// line runs.
func Normalize(raw string) string {
	text := raw

	// Line endings first so every later pass sees plain \n.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Non-breaking and zero-width spaces from PDF/DOCX extraction.
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "\u200b", "")
	text = strings.ReplaceAll(text, "\ufeff", "")

	// Dash variants to a single hyphen form so the factor and summary
	// patterns only need to match "-".
	text = dashRe.ReplaceAllString(text, "-")

	// Run-together token repairs.
	text = factorFusionRe.ReplaceAllString(text, "$1 $2")
	text = pointsFusionRe.ReplaceAllString(text, "$1 $2")
	text = levelFusionRe.ReplaceAllString(text, "$1 $2-$3, $4 Points")

	text = trailingSpaceRe.ReplaceAllString(text, "")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")

	return text
}
