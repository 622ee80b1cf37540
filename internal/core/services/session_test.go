package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/serialise"
)

const factorOneTitle = "Factor 1 - Knowledge Required Level 1-7, 1250 Points"

// structuredText parses into HEADER, Factor 1, and the three summary
// sections.
const structuredText = "**HEADER**\nJob Series: GS-0301\n\nFactor 1 - Knowledge Required Level 1-7, 1250 Points\nOld rationale.\n\nTotal Points: 1250\nFinal Grade: GS-9\nGrade Range: 9-9"

type fakeRecomputer struct {
	eval       *domain.FactorEvaluation
	err        error
	gotFactors map[string]string
	calls      int
}

func (f *fakeRecomputer) RecomputeFactors(_ context.Context, factors map[string]string) (*domain.FactorEvaluation, error) {
	f.calls++
	f.gotFactors = factors
	if f.err != nil {
		return nil, f.err
	}
	return f.eval, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

type appendCall struct {
	sessionID string
	title     string
	record    domain.EditRecord
}

type fakeStore struct {
	appends   []appendCall
	rekeys    [][2]string
	appendErr error
}

func (f *fakeStore) Append(_ context.Context, sessionID, title string, rec domain.EditRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appends = append(f.appends, appendCall{sessionID: sessionID, title: title, record: rec})
	return nil
}

func (f *fakeStore) List(_ context.Context, _, _ string) ([]domain.EditRecord, error) {
	return nil, nil
}

func (f *fakeStore) Rekey(_ context.Context, _, oldTitle, newTitle string) error {
	f.rekeys = append(f.rekeys, [2]string{oldTitle, newTitle})
	return nil
}

func (f *fakeStore) Close() error { return nil }

func TestSession_LoadText(t *testing.T) {
	s := NewSession(nil, nil, nil)
	conflicts := s.LoadText(structuredText)

	assert.Empty(t, conflicts)
	require.NotNil(t, s.Document())
	assert.Equal(t, 5, s.Document().Len())
	assert.NotEmpty(t, s.ID())
}

func TestSession_LoadFile(t *testing.T) {
	s := NewSession(&fakeExtractor{text: structuredText}, nil, nil)
	conflicts, err := s.LoadFile(context.Background(), "pd.txt")

	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, 5, s.Document().Len())
}

func TestSession_LoadFileWithoutExtractor(t *testing.T) {
	s := NewSession(nil, nil, nil)
	_, err := s.LoadFile(context.Background(), "pd.txt")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestSession_LoadFileExtractError(t *testing.T) {
	wantErr := errors.New("corrupt file")
	s := NewSession(&fakeExtractor{err: wantErr}, nil, nil)
	_, err := s.LoadFile(context.Background(), "pd.txt")
	assert.ErrorIs(t, err, wantErr)
}

func TestSession_RenderWithoutDocument(t *testing.T) {
	s := NewSession(nil, nil, nil)
	_, err := s.Render(serialise.ModeUpdated)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestSession_EditWithoutDocument(t *testing.T) {
	s := NewSession(nil, nil, nil)
	_, err := s.BeginEdit("HEADER")
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestSession_BeginEditUnknownSection(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	_, err := s.BeginEdit("NO SUCH SECTION")
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestSession_SaveRequiresBeginEdit(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	err := s.SaveSection(context.Background(), "HEADER", "new")
	assert.ErrorIs(t, err, domain.ErrNoEditInProgress)
}

func TestSession_StageRequiresBeginEdit(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	err := s.StageEdit("HEADER", "draft")
	assert.ErrorIs(t, err, domain.ErrNoEditInProgress)
}

func TestSession_SaveNonFactorSection(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	content, err := s.BeginEdit("HEADER")
	require.NoError(t, err)
	assert.Equal(t, "Job Series: GS-0301", content)

	require.NoError(t, s.SaveSection(context.Background(), "HEADER", "Job Series: GS-0343"))
	assert.Equal(t, "Job Series: GS-0343", s.Document().Get("HEADER").Content)

	records := s.History("HEADER")
	require.Len(t, records, 1)
	assert.Equal(t, "Job Series: GS-0343", records[0].Content)
	assert.Equal(t, "HEADER", records[0].Header)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestSession_UndoAndReset(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	_, err := s.BeginEdit("HEADER")
	require.NoError(t, err)
	require.NoError(t, s.StageEdit("HEADER", "draft one"))
	require.NoError(t, s.StageEdit("HEADER", "draft two"))

	content, err := s.UndoSection("HEADER")
	require.NoError(t, err)
	assert.Equal(t, "draft one", content)

	content, err = s.UndoSection("HEADER")
	require.NoError(t, err)
	assert.Equal(t, "Job Series: GS-0301", content)

	// The original entry is never popped.
	content, err = s.UndoSection("HEADER")
	require.NoError(t, err)
	assert.Equal(t, "Job Series: GS-0301", content)
}

func TestSession_ResetCollapsesStack(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	_, err := s.BeginEdit("HEADER")
	require.NoError(t, err)
	require.NoError(t, s.StageEdit("HEADER", "draft one"))
	require.NoError(t, s.StageEdit("HEADER", "draft two"))

	content, err := s.ResetSection("HEADER")
	require.NoError(t, err)
	assert.Equal(t, "Job Series: GS-0301", content)

	// After reset there is nothing left to undo.
	content, err = s.UndoSection("HEADER")
	require.NoError(t, err)
	assert.Equal(t, "Job Series: GS-0301", content)
}

func TestSession_UndoWithoutEdits(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	_, err := s.UndoSection("HEADER")
	assert.ErrorIs(t, err, domain.ErrNoEditInProgress)
}

func TestSession_CancelEdit(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	_, err := s.BeginEdit("HEADER")
	require.NoError(t, err)
	require.NoError(t, s.StageEdit("HEADER", "abandoned draft"))

	content, err := s.CancelEdit("HEADER")
	require.NoError(t, err)
	assert.Equal(t, "Job Series: GS-0301", content)

	// Editing state is cleared, so staging now fails.
	assert.ErrorIs(t, s.StageEdit("HEADER", "x"), domain.ErrNoEditInProgress)
}

func TestSession_CancelWithoutEdit(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	_, err := s.CancelEdit("HEADER")
	assert.ErrorIs(t, err, domain.ErrNoEditInProgress)
}

func TestSession_FactorSaveWithoutRecomputer(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	_, err := s.BeginEdit(factorOneTitle)
	require.NoError(t, err)
	require.NoError(t, s.SaveSection(context.Background(), factorOneTitle, "Edited rationale."))

	// Without a recomputer the cascade is skipped and titles are stable.
	assert.Equal(t, "Edited rationale.", s.Document().Get(factorOneTitle).Content)
	assert.True(t, s.Document().Has("Total Points: 1250"))
}

func TestSession_FactorSaveCascade(t *testing.T) {
	recomputer := &fakeRecomputer{
		eval: &domain.FactorEvaluation{
			Factors: map[string]domain.FactorResult{
				"1": {Level: "1-8", Points: 1550, Rationale: "Recomputed rationale."},
			},
			TotalPoints: 1550,
			FinalGrade:  "GS-11",
			GradeRange:  "11-11",
		},
	}
	store := &fakeStore{}
	s := NewSession(nil, recomputer, store)
	s.LoadText(structuredText)

	_, err := s.BeginEdit(factorOneTitle)
	require.NoError(t, err)
	require.NoError(t, s.SaveSection(context.Background(), factorOneTitle, "Edited rationale."))

	assert.Equal(t, 1, recomputer.calls)
	assert.Equal(t, map[string]string{"1": "Edited rationale."}, recomputer.gotFactors)

	newTitle := "Factor 1 - Knowledge Required Level 1-8, 1550 Points"
	require.Equal(t, []string{
		"HEADER",
		newTitle,
		"Total Points: 1550",
		"Final Grade: GS-11",
		"Grade Range: 11-11",
	}, s.Document().Titles())
	assert.Equal(t, "Recomputed rationale.", s.Document().Get(newTitle).Content)

	// Stack and history follow the section to its recomputed title.
	records := s.History(newTitle)
	require.Len(t, records, 1)
	assert.Equal(t, "Edited rationale.", records[0].Content)
	assert.Empty(t, s.History(factorOneTitle))

	content, err := s.UndoSection(newTitle)
	require.NoError(t, err)
	assert.Equal(t, "Edited rationale.", content)

	// The store saw the append under the old title and the rekeys.
	require.Len(t, store.appends, 1)
	assert.Equal(t, s.ID(), store.appends[0].sessionID)
	assert.Equal(t, factorOneTitle, store.appends[0].title)
	assert.Contains(t, store.rekeys, [2]string{factorOneTitle, newTitle})
	assert.Contains(t, store.rekeys, [2]string{"Total Points: 1250", "Total Points: 1550"})
}

func TestSession_CascadeFailureKeepsEdit(t *testing.T) {
	recomputer := &fakeRecomputer{err: errors.New("service down")}
	s := NewSession(nil, recomputer, nil)
	s.LoadText(structuredText)

	_, err := s.BeginEdit(factorOneTitle)
	require.NoError(t, err)

	err = s.SaveSection(context.Background(), factorOneTitle, "Edited rationale.")
	assert.ErrorIs(t, err, domain.ErrRecomputeFailed)

	// The saved edit stays; only the cascade failed.
	assert.Equal(t, "Edited rationale.", s.Document().Get(factorOneTitle).Content)
	assert.True(t, s.Document().Has("Total Points: 1250"))
}

func TestSession_HistoryStoreFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{appendErr: errors.New("disk full")}
	s := NewSession(nil, nil, store)
	s.LoadText(structuredText)

	_, err := s.BeginEdit("HEADER")
	require.NoError(t, err)
	assert.NoError(t, s.SaveSection(context.Background(), "HEADER", "new content"))
	assert.Equal(t, "new content", s.Document().Get("HEADER").Content)
}

func TestSession_LoadTextResetsEditState(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.LoadText(structuredText)

	_, err := s.BeginEdit("HEADER")
	require.NoError(t, err)

	s.LoadText(structuredText)
	assert.ErrorIs(t, s.StageEdit("HEADER", "x"), domain.ErrNoEditInProgress)
	assert.Empty(t, s.History("HEADER"))
}
