package domain

import (
	"regexp"
	"strings"
)

// Well-known section titles.
const (
	TitleHeader       = "HEADER"
	TitleIntroduction = "INTRODUCTION"
	TitleMajorDuties  = "MAJOR DUTIES"
	TitleConditions   = "CONDITIONS OF EMPLOYMENT"
	TitleSeries       = "TITLE AND SERIES DETERMINATION"
	TitleFLSA         = "FAIR LABOR STANDARDS ACT DETERMINATION"

	// TitleFullDocument is the sentinel title used when no section header
	// was found anywhere in the text.
	TitleFullDocument = "Full Document"
)

// Summary title prefixes. Summary sections carry their value in the
// title itself ("Total Points: 1745") and serialise header-only.
const (
	PrefixTotalPoints = "Total Points"
	PrefixFinalGrade  = "Final Grade"
	PrefixGradeRange  = "Grade Range"
)

// Factor4ALabel and Factor4BLabel are the fixed labels for the personal
// and purpose-of-contacts split of Factor 4. Detected level/points are
// appended when present.
const (
	Factor4ALabel = "Factor 4A - PERSONAL CONTACTS (NATURE OF CONTACTS)"
	Factor4BLabel = "Factor 4B - PURPOSE OF CONTACTS"
)

// FactorNames maps factor numbers to the nine standardised evaluation
// dimensions.
var FactorNames = map[int]string{
	1: "Knowledge Required",
	2: "Supervisory Controls",
	3: "Guidelines",
	4: "Complexity",
	5: "Scope and Effect",
	6: "Personal Contacts",
	7: "Purpose of Contacts",
	8: "Physical Demands",
	9: "Work Environment",
}

var (
	majorDutyTitleRe = regexp.MustCompile(`(?i)^major\s+dut(?:y|ies)\b\s*#?\s*(\d+)?`)
	factorTitleRe    = regexp.MustCompile(`(?i)^factor\s*(\d)\s*([ab])?\b`)
)

// MajorDutyNumber reports whether title is a major-duty title and
// returns its numeric suffix. The suffix is empty for the bare
// "MAJOR DUTIES" heading. Tolerant of duty/duties spelling and case.
func MajorDutyNumber(title string) (string, bool) {
	m := majorDutyTitleRe.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SummaryPrefix reports whether title is a summary title and returns
// its canonical prefix (PrefixTotalPoints, PrefixFinalGrade or
// PrefixGradeRange). Matching is case-insensitive prefix matching.
func SummaryPrefix(title string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(title))
	switch {
	case strings.HasPrefix(t, "total points"):
		return PrefixTotalPoints, true
	case strings.HasPrefix(t, "final grade"):
		return PrefixFinalGrade, true
	case strings.HasPrefix(t, "grade range"):
		return PrefixGradeRange, true
	}
	return "", false
}

// FactorKey reports whether title is a factor title and returns its key:
// "1".."9", or "4A"/"4B" for the contacts split.
func FactorKey(title string) (string, bool) {
	m := factorTitleRe.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return "", false
	}
	key := m[1]
	if m[2] != "" {
		key += strings.ToUpper(m[2])
	}
	return key, true
}

// IsMajorDutyOrFactor reports whether editing a section with this title
// must trigger the factor recompute cascade.
func IsMajorDutyOrFactor(title string) bool {
	if _, ok := MajorDutyNumber(title); ok {
		return true
	}
	_, ok := FactorKey(title)
	return ok
}
