package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSectionNotFound indicates no section with the given title exists
	// in the document.
	ErrSectionNotFound = errors.New("section not found")

	// ErrNoEditInProgress indicates a save/cancel/undo was requested for a
	// section that is not currently being edited.
	ErrNoEditInProgress = errors.New("no edit in progress")

	// ErrRecomputeFailed indicates the factor recompute collaborator
	// failed. The triggering section edit is already committed; only the
	// dependent factor and summary updates were skipped.
	ErrRecomputeFailed = errors.New("factor recompute failed")

	// ErrGeneratorUnavailable indicates the AI generation service is not
	// configured. Drafting and recommendation features are disabled.
	ErrGeneratorUnavailable = errors.New("generation service unavailable")

	// ErrHistoryUnavailable indicates the edit history store is not
	// configured. Edits still work; only persistence is disabled.
	ErrHistoryUnavailable = errors.New("history store unavailable")

	// ErrUnsupportedFormat indicates a file format the text extractor
	// cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyDocument indicates an operation that requires a loaded
	// document was called on an empty session.
	ErrEmptyDocument = errors.New("no document loaded")
)
