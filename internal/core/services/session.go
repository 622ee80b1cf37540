package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/core/ports/driven"
	"github.com/openpd/pdraft/internal/core/ports/driving"
	"github.com/openpd/pdraft/internal/logger"
	"github.com/openpd/pdraft/internal/resolve"
	"github.com/openpd/pdraft/internal/serialise"
)

// Ensure Session implements the interface.
var _ driving.SessionService = (*Session)(nil)

// Session owns one document plus its per-section undo stacks and edit
// history. All mutations must happen on one control flow; the session
// has no internal locking.
type Session struct {
	id        string
	doc       *domain.Document
	conflicts []resolve.Conflict

	editing map[string]bool
	stacks  map[string][]string
	history map[string][]domain.EditRecord

	extractor  driven.TextExtractor
	recomputer driven.FactorRecomputer
	store      driven.HistoryStore

	now func() time.Time
}

// NewSession creates an empty editing session. The extractor, recomputer
// and history store may each be nil; the corresponding features degrade
// (no file loading, no recompute cascade, no persistence).
func NewSession(
	extractor driven.TextExtractor,
	recomputer driven.FactorRecomputer,
	store driven.HistoryStore,
) *Session {
	return &Session{
		id:         uuid.New().String(),
		editing:    make(map[string]bool),
		stacks:     make(map[string][]string),
		history:    make(map[string][]domain.EditRecord),
		extractor:  extractor,
		recomputer: recomputer,
		store:      store,
		now:        time.Now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Conflicts returns the factor-title conflicts from the last load.
func (s *Session) Conflicts() []resolve.Conflict {
	return s.conflicts
}

// LoadText runs the parsing pipeline over raw text and replaces the
// session's document and edit state.
func (s *Session) LoadText(raw string) []resolve.Conflict {
	s.doc, s.conflicts = RunPipeline(raw)
	s.editing = make(map[string]bool)
	s.stacks = make(map[string][]string)
	s.history = make(map[string][]domain.EditRecord)
	return s.conflicts
}

// LoadFile extracts text from path and loads it.
func (s *Session) LoadFile(ctx context.Context, path string) ([]resolve.Conflict, error) {
	if s.extractor == nil {
		return nil, domain.ErrUnsupportedFormat
	}
	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	return s.LoadText(text), nil
}

// Document returns the session's current document, or nil.
func (s *Session) Document() *domain.Document {
	return s.doc
}

// Sections returns the current document's sections in order, or nil
// when nothing is loaded.
func (s *Session) Sections() []domain.Section {
	if s.doc == nil {
		return nil
	}
	return s.doc.Sections()
}

// Get returns one section by exact title.
func (s *Session) Get(title string) (*domain.Section, error) {
	return s.section(title)
}

// Render serialises the current document to canonical form.
func (s *Session) Render(mode serialise.Mode) (string, error) {
	if s.doc == nil {
		return "", domain.ErrEmptyDocument
	}
	return serialise.Serialize(s.doc, mode), nil
}

// BeginEdit moves a section into the editing state and returns its
// current content. The undo stack is seeded with the current content if
// the section has never been edited.
func (s *Session) BeginEdit(title string) (string, error) {
	sec, err := s.section(title)
	if err != nil {
		return "", err
	}
	if len(s.stacks[title]) == 0 {
		s.stacks[title] = []string{sec.Content}
	}
	s.editing[title] = true
	return sec.Content, nil
}

// StageEdit pushes in-progress content onto the section's undo stack
// without committing it to the document.
func (s *Session) StageEdit(title, content string) error {
	if !s.editing[title] {
		return domain.ErrNoEditInProgress
	}
	s.stacks[title] = append(s.stacks[title], content)
	return nil
}

// SaveSection commits edited content: the document is updated, the edit
// is appended to history and the undo stack collapses to the new
// content. Saving a factor or major-duty section additionally triggers
// the recompute cascade; a cascade failure leaves the saved edit in
// place and is reported as ErrRecomputeFailed.
func (s *Session) SaveSection(ctx context.Context, title, content string) error {
	if !s.editing[title] {
		return domain.ErrNoEditInProgress
	}
	if _, err := s.section(title); err != nil {
		return err
	}

	s.doc.Set(title, content)
	rec := domain.EditRecord{Content: content, Header: title, Timestamp: s.now()}
	s.history[title] = append(s.history[title], rec)
	s.stacks[title] = []string{content}
	s.editing[title] = false

	if s.store != nil {
		if err := s.store.Append(ctx, s.id, title, rec); err != nil {
			logger.Warn("persisting edit history for %q: %v", title, err)
		}
	}

	if domain.IsMajorDutyOrFactor(title) {
		if err := s.cascadeRecompute(ctx); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrRecomputeFailed, err)
		}
	}
	return nil
}

// CancelEdit abandons an in-progress edit and returns the last saved
// content. The undo stack is not touched.
func (s *Session) CancelEdit(title string) (string, error) {
	sec, err := s.section(title)
	if err != nil {
		return "", err
	}
	if !s.editing[title] {
		return "", domain.ErrNoEditInProgress
	}
	s.editing[title] = false
	return sec.Content, nil
}

// UndoSection pops the most recent undo entry, if more than one exists,
// and returns the new top. The document is not touched until Save.
func (s *Session) UndoSection(title string) (string, error) {
	if _, err := s.section(title); err != nil {
		return "", err
	}
	stack := s.stacks[title]
	if len(stack) == 0 {
		return "", domain.ErrNoEditInProgress
	}
	if len(stack) > 1 {
		stack = stack[:len(stack)-1]
		s.stacks[title] = stack
	}
	s.editing[title] = false
	return stack[len(stack)-1], nil
}

// ResetSection collapses the undo stack to its original entry and
// returns it.
func (s *Session) ResetSection(title string) (string, error) {
	if _, err := s.section(title); err != nil {
		return "", err
	}
	stack := s.stacks[title]
	if len(stack) == 0 {
		return "", domain.ErrNoEditInProgress
	}
	s.stacks[title] = stack[:1]
	s.editing[title] = false
	return stack[0], nil
}

// History returns the append-only edit history for a title, oldest
// first.
func (s *Session) History(title string) []domain.EditRecord {
	records := s.history[title]
	out := make([]domain.EditRecord, len(records))
	copy(out, records)
	return out
}

func (s *Session) section(title string) (*domain.Section, error) {
	if s.doc == nil {
		return nil, domain.ErrEmptyDocument
	}
	sec := s.doc.Get(title)
	if sec == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSectionNotFound, title)
	}
	return sec, nil
}

// cascadeRecompute re-evaluates all factors and atomically replaces the
// factor and summary sections with the recomputed titles and content.
// Undo stacks and history follow the sections to their new titles.
func (s *Session) cascadeRecompute(ctx context.Context) error {
	if s.recomputer == nil {
		logger.Debug("no factor recomputer configured, skipping cascade")
		return nil
	}

	factors := make(map[string]string)
	factorTitles := make(map[string]string)
	for _, title := range s.doc.Titles() {
		if key, ok := domain.FactorKey(title); ok {
			if _, seen := factors[key]; !seen {
				factors[key] = s.doc.Get(title).Content
				factorTitles[key] = title
			}
		}
	}

	eval, err := s.recomputer.RecomputeFactors(ctx, factors)
	if err != nil {
		return err
	}

	for _, key := range factorKeyOrder {
		result, ok := eval.Factors[key]
		if !ok {
			continue
		}
		newTitle := factorTitleFor(key, result)
		if oldTitle, exists := factorTitles[key]; exists {
			s.rekeySection(ctx, oldTitle, newTitle)
		}
		s.doc.Set(newTitle, result.Rationale)
	}

	s.replaceSummary(ctx, domain.PrefixTotalPoints, fmt.Sprintf("%s: %d", domain.PrefixTotalPoints, eval.TotalPoints))
	s.replaceSummary(ctx, domain.PrefixFinalGrade, fmt.Sprintf("%s: %s", domain.PrefixFinalGrade, eval.FinalGrade))
	s.replaceSummary(ctx, domain.PrefixGradeRange, fmt.Sprintf("%s: %s", domain.PrefixGradeRange, eval.GradeRange))

	return nil
}

// rekeySection renames a document section and migrates its undo stack
// and history entries to the new title. Entries already keyed by the new
// title are replaced, not merged.
func (s *Session) rekeySection(ctx context.Context, oldTitle, newTitle string) {
	if oldTitle == newTitle {
		return
	}
	if err := s.doc.Rename(oldTitle, newTitle); err != nil {
		return
	}
	if stack, ok := s.stacks[oldTitle]; ok {
		s.stacks[newTitle] = stack
		delete(s.stacks, oldTitle)
	}
	if records, ok := s.history[oldTitle]; ok {
		s.history[newTitle] = records
		delete(s.history, oldTitle)
	}
	delete(s.editing, oldTitle)

	if s.store != nil {
		if err := s.store.Rekey(ctx, s.id, oldTitle, newTitle); err != nil {
			logger.Warn("rekeying history %q -> %q: %v", oldTitle, newTitle, err)
		}
	}
}

// replaceSummary renames the existing summary section for a prefix to
// the recomputed title, or appends one if absent.
func (s *Session) replaceSummary(ctx context.Context, prefix, newTitle string) {
	for _, title := range s.doc.Titles() {
		if p, ok := domain.SummaryPrefix(title); ok && p == prefix {
			s.rekeySection(ctx, title, newTitle)
			s.doc.Set(newTitle, "")
			return
		}
	}
	s.doc.Set(newTitle, "")
}

// factorKeyOrder applies recomputed factors in canonical order.
var factorKeyOrder = []string{"1", "2", "3", "4", "4A", "4B", "5", "6", "7", "8", "9"}

// factorTitleFor builds the canonical title for a recomputed factor.
func factorTitleFor(key string, result domain.FactorResult) string {
	levelClause := fmt.Sprintf(" Level %s, %d Points", result.Level, result.Points)
	switch key {
	case "4A":
		return domain.Factor4ALabel + levelClause
	case "4B":
		return domain.Factor4BLabel + levelClause
	}
	if name, ok := domain.FactorNames[int(key[0]-'0')]; ok && len(key) == 1 {
		return fmt.Sprintf("Factor %s - %s%s", key, name, levelClause)
	}
	return "Factor " + key + levelClause
}
