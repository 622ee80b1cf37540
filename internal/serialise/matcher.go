package serialise

import (
	"fmt"
	"strings"

	"github.com/openpd/pdraft/internal/core/domain"
)

// SlotKind classifies a canonical slot for pattern-class matching.
type SlotKind int

const (
	// SlotPlain matches by label only.
	SlotPlain SlotKind = iota

	// SlotSummary matches summary titles by prefix; emitted header-only.
	SlotSummary

	// SlotFactor matches factor titles by factor key.
	SlotFactor

	// SlotDuty matches major-duty titles by numeric suffix.
	SlotDuty
)

// Slot is one entry in the canonical section order.
type Slot struct {
	// Label is the canonical header label for the slot.
	Label string

	// Kind selects the pattern-class matcher for the slot.
	Kind SlotKind

	// Key is the factor key ("1".."9", "4A", "4B"), the duty number, or
	// the summary prefix, depending on Kind.
	Key string
}

// maxMajorDuties bounds the MAJOR DUTY N canonical slots. Documents
// with more numbered duties keep the extras in the leftover pass.
const maxMajorDuties = 20

// canonicalSlots returns the fixed canonical section order.
func canonicalSlots() []Slot {
	slots := []Slot{
		{Label: domain.TitleHeader, Kind: SlotPlain},
		{Label: domain.TitleIntroduction, Kind: SlotPlain},
		{Label: domain.TitleMajorDuties, Kind: SlotDuty, Key: ""},
	}
	for i := 1; i <= maxMajorDuties; i++ {
		slots = append(slots, Slot{
			Label: fmt.Sprintf("MAJOR DUTY %d", i),
			Kind:  SlotDuty,
			Key:   fmt.Sprintf("%d", i),
		})
	}
	for _, key := range []string{"1", "2", "3", "4", "4A", "4B", "5", "6", "7", "8", "9"} {
		slots = append(slots, Slot{
			Label: "Factor " + key,
			Kind:  SlotFactor,
			Key:   key,
		})
	}
	slots = append(slots,
		Slot{Label: domain.PrefixTotalPoints, Kind: SlotSummary, Key: domain.PrefixTotalPoints},
		Slot{Label: domain.PrefixFinalGrade, Kind: SlotSummary, Key: domain.PrefixFinalGrade},
		Slot{Label: domain.PrefixGradeRange, Kind: SlotSummary, Key: domain.PrefixGradeRange},
		Slot{Label: domain.TitleConditions, Kind: SlotPlain},
		Slot{Label: domain.TitleSeries, Kind: SlotPlain},
		Slot{Label: domain.TitleFLSA, Kind: SlotPlain},
	)
	return slots
}

// matcherFunc reports whether a document title satisfies a slot.
type matcherFunc func(slot Slot, title string) bool

// matchers is the ranked matcher chain: exact, case-insensitive,
// pattern-class, punctuation-normalised, then last-resort substring.
// Earlier matchers always win over later ones.
var matchers = []matcherFunc{
	func(slot Slot, title string) bool {
		return title == slot.Label
	},
	func(slot Slot, title string) bool {
		return strings.EqualFold(title, slot.Label)
	},
	func(slot Slot, title string) bool {
		switch slot.Kind {
		case SlotFactor:
			key, ok := domain.FactorKey(title)
			return ok && key == slot.Key
		case SlotDuty:
			num, ok := domain.MajorDutyNumber(title)
			return ok && num == slot.Key
		case SlotSummary:
			prefix, ok := domain.SummaryPrefix(title)
			return ok && prefix == slot.Key
		}
		return false
	},
	func(slot Slot, title string) bool {
		if crossNumbered(slot, title) {
			return false
		}
		return foldPunctuation(title) == foldPunctuation(slot.Label)
	},
	func(slot Slot, title string) bool {
		if crossNumbered(slot, title) {
			return false
		}
		a := strings.ToLower(title)
		b := strings.ToLower(slot.Label)
		return strings.Contains(a, b) || strings.Contains(b, a)
	},
}

// crossNumbered reports whether title parses as a factor or duty with a
// key other than the slot's. The loose matchers must not let the
// "Factor 4" slot swallow "Factor 4A ...", nor "MAJOR DUTY 1" swallow
// "MAJOR DUTY 11"; numbered titles belong to their own slots.
func crossNumbered(slot Slot, title string) bool {
	switch slot.Kind {
	case SlotFactor:
		key, ok := domain.FactorKey(title)
		return ok && key != slot.Key
	case SlotDuty:
		num, ok := domain.MajorDutyNumber(title)
		return ok && num != slot.Key
	}
	return false
}

// findSlotTitle returns the first unused document title matching the
// slot, trying each ranked matcher in turn.
func findSlotTitle(slot Slot, titles []string, used map[string]bool) string {
	for _, match := range matchers {
		for _, title := range titles {
			if used[title] {
				continue
			}
			if match(slot, title) {
				return title
			}
		}
	}
	return ""
}

// foldPunctuation lowercases a title and strips everything but letters
// and digits, so "MAJOR DUTY #2" and "Major Duty 2." compare equal.
func foldPunctuation(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
