// Package driven defines the outbound port interfaces the core depends
// on: the AI collaborators, file text extraction, edit history
// persistence and configuration. Adapters implement these; the core
// never imports an adapter.
package driven

import (
	"context"

	"github.com/openpd/pdraft/internal/core/domain"
)

// GenerateRequest describes a drafting request to the AI service.
type GenerateRequest struct {
	// JobSeries is the 4-digit occupational series code.
	JobSeries string

	// PositionTitle is the working title for the position.
	PositionTitle string

	// Agency and Organization identify the employing office.
	Agency       string
	Organization string

	// Duties is the free-text duties input the draft is built from.
	Duties string

	// GSGrade is the target grade, if the user has chosen one.
	GSGrade string
}

// Generator produces full document drafts from the AI service. The
// stream is consumed and accumulated internally; Generate returns only
// once the stream has closed, because partial documents cannot be split
// into sections correctly.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Recommender returns classification recommendations for duties text.
type Recommender interface {
	Recommend(ctx context.Context, duties string) (*domain.Recommendation, error)
}

// FactorRecomputer re-evaluates factor levels and points after a duties
// or factor edit. Factors is keyed by factor key and holds the current
// factor narrative content.
type FactorRecomputer interface {
	RecomputeFactors(ctx context.Context, factors map[string]string) (*domain.FactorEvaluation, error)
}

// TextExtractor turns an uploaded file into raw text. Binary format
// internals (PDF, DOCX) live behind this boundary.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// HistoryStore persists per-section edit history for a session.
type HistoryStore interface {
	// Append stores one edit record under the section's current title.
	Append(ctx context.Context, sessionID, title string, rec domain.EditRecord) error

	// List returns the records for a title, oldest first.
	List(ctx context.Context, sessionID, title string) ([]domain.EditRecord, error)

	// Rekey moves a title's records to a new title after a recompute
	// renames the section.
	Rekey(ctx context.Context, sessionID, oldTitle, newTitle string) error

	Close() error
}

// ConfigStore provides persisted configuration.
type ConfigStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Save() error
}
