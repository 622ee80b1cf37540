// Package driving defines the inbound port interfaces through which the
// CLI, TUI and MCP adapters drive the core services.
package driving

import (
	"context"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/resolve"
	"github.com/openpd/pdraft/internal/serialise"
)

// SessionService manages one editing session: a document plus its
// per-section undo stacks and history.
type SessionService interface {
	// LoadText runs the parsing pipeline over raw text and makes the
	// result the session's document, replacing any previous one.
	LoadText(raw string) []resolve.Conflict

	// LoadFile extracts text from a file and loads it.
	LoadFile(ctx context.Context, path string) ([]resolve.Conflict, error)

	// Document returns the session's current document, or nil.
	Document() *domain.Document

	// Render serialises the current document to canonical form.
	Render(mode serialise.Mode) (string, error)

	// BeginEdit moves a section into the editing state.
	BeginEdit(title string) (string, error)

	// StageEdit pushes in-progress content onto the section's undo stack
	// without committing it to the document.
	StageEdit(title, content string) error

	// SaveSection commits edited content and, for factor and major-duty
	// sections, runs the recompute cascade.
	SaveSection(ctx context.Context, title, content string) error

	// CancelEdit abandons an in-progress edit.
	CancelEdit(title string) (string, error)

	// UndoSection pops the most recent undo entry and returns the new top.
	UndoSection(title string) (string, error)

	// ResetSection collapses the undo stack to the original entry.
	ResetSection(title string) (string, error)

	// History returns the append-only edit history for a title.
	History(title string) []domain.EditRecord
}
