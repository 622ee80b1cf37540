package services

import (
	"strings"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/logger"
	"github.com/openpd/pdraft/internal/normalise"
	"github.com/openpd/pdraft/internal/paragraph"
	"github.com/openpd/pdraft/internal/resolve"
	"github.com/openpd/pdraft/internal/split"
)

// RunPipeline runs the full parsing pipeline over raw text:
// normalise, split, resolve duplicates, repair paragraphs.
// It never fails; unrecognisable structure degrades to the heuristic
// identifier and finally to a single "Full Document" section.
func RunPipeline(raw string) (*domain.Document, []resolve.Conflict) {
	text := normalise.Normalize(raw)
	doc := split.Split(text)

	// The splitter signals "no headers anywhere" with a single-entry
	// fallback document; try heuristic identification before giving up.
	if doc.Len() == 1 && doc.Has(domain.TitleFullDocument) {
		logger.Debug("no section headers found, using heuristic identification")
		if heuristic := split.IdentifyBasicSections(doc.Get(domain.TitleFullDocument).Content); heuristic.Len() > 0 {
			doc = heuristic
		}
	}

	result := resolve.Resolve(doc)
	for _, c := range result.Conflicts {
		logger.Warn("factor %s has %d competing section titles: %s",
			c.FactorKey, len(c.Titles), strings.Join(c.Titles, "; "))
	}

	for _, title := range doc.Titles() {
		sec := doc.Get(title)
		doc.Set(title, paragraph.Repair(sec.Content))
	}

	logger.Debug("pipeline produced %d sections", doc.Len())
	return doc, result.Conflicts
}
