// Package resolve collapses duplicate sections produced by repeated AI
// regeneration. Major-duty sections are grouped by numeric suffix and
// summary sections by title prefix; the first occurrence wins and later
// ones are discarded, not merged, because regeneration leaves stale
// duplicates rather than legitimate alternates.
//
// Factor sections are never collapsed. Same-numbered factor titles are
// reported as conflicts for the caller to surface instead of silently
// picking one.
package resolve

import (
	"github.com/openpd/pdraft/internal/core/domain"
)

// Conflict records multiple differently-worded titles claiming the same
// factor.
type Conflict struct {
	// FactorKey is the contested factor, e.g. "3" or "4A".
	FactorKey string

	// Titles are the colliding section titles in document order.
	Titles []string
}

// Result is the outcome of duplicate resolution.
type Result struct {
	// Doc is the resolved document. Resolution happens in place; this is
	// the same document the caller passed in.
	Doc *domain.Document

	// Conflicts lists factor-title collisions left in the document.
	Conflicts []Conflict
}

// Resolve removes duplicate major-duty and summary sections from doc in
// place and reports factor-title conflicts. It is idempotent: resolving
// an already-resolved document changes nothing and reports the same
// conflicts.
func Resolve(doc *domain.Document) *Result {
	dropDuplicateDuties(doc)
	dropDuplicateSummaries(doc)
	return &Result{
		Doc:       doc,
		Conflicts: factorConflicts(doc),
	}
}

// dropDuplicateDuties keeps the first-encountered title per numeric
// duty suffix and deletes the rest. "MAJOR DUTIES" (no suffix) is its
// own group.
func dropDuplicateDuties(doc *domain.Document) {
	seen := make(map[string]bool)
	for _, title := range doc.Titles() {
		num, ok := domain.MajorDutyNumber(title)
		if !ok {
			continue
		}
		if seen[num] {
			doc.Delete(title)
			continue
		}
		seen[num] = true
	}
}

// dropDuplicateSummaries keeps the first title per summary prefix. Later
// occurrences are deleted regardless of their numeric suffix.
func dropDuplicateSummaries(doc *domain.Document) {
	seen := make(map[string]bool)
	for _, title := range doc.Titles() {
		prefix, ok := domain.SummaryPrefix(title)
		if !ok {
			continue
		}
		if seen[prefix] {
			doc.Delete(title)
			continue
		}
		seen[prefix] = true
	}
}

// factorConflicts reports factor keys claimed by more than one title.
func factorConflicts(doc *domain.Document) []Conflict {
	byKey := make(map[string][]string)
	var keys []string
	for _, title := range doc.Titles() {
		key, ok := domain.FactorKey(title)
		if !ok {
			continue
		}
		if _, exists := byKey[key]; !exists {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], title)
	}

	var conflicts []Conflict
	for _, key := range keys {
		if titles := byKey[key]; len(titles) > 1 {
			conflicts = append(conflicts, Conflict{FactorKey: key, Titles: titles})
		}
	}
	return conflicts
}
