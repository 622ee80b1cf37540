package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/core/ports/driven"
	"github.com/openpd/pdraft/internal/core/ports/driving"
	"github.com/openpd/pdraft/internal/core/services"
)

type fakeDrafter struct {
	text string
	rec  *domain.Recommendation
	err  error
}

func (f *fakeDrafter) Draft(_ context.Context, _ driven.GenerateRequest) (string, error) {
	return f.text, f.err
}

func (f *fakeDrafter) Recommend(_ context.Context, _ string) (*domain.Recommendation, error) {
	return f.rec, f.err
}

func testTUIPorts(drafter DraftService) *Ports {
	return &Ports{
		Drafter: drafter,
		NewSession: func() driving.SessionService {
			return services.NewSession(nil, nil, nil)
		},
	}
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingDraftService)

	p := &Ports{Drafter: &fakeDrafter{}}
	assert.ErrorIs(t, p.Validate(), ErrMissingSessionFactory)

	assert.NoError(t, testTUIPorts(&fakeDrafter{}).Validate())
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testTUIPorts(&fakeDrafter{}))
	require.NoError(t, err)
	assert.Equal(t, StepIntake, app.Step())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	_, err := NewApp(&Ports{})
	assert.Error(t, err)
}

func TestApp_DraftCompletedAdvancesToReview(t *testing.T) {
	app, err := NewApp(testTUIPorts(&fakeDrafter{}))
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	app.step = StepDrafting

	model, _ := app.Update(draftCompleted{document: "**HEADER**\n\nJob Series: GS-0301"})

	updated := model.(*App)
	assert.Equal(t, StepReview, updated.Step())
	assert.Equal(t, "**HEADER**\n\nJob Series: GS-0301", updated.Document())
}

func TestApp_DraftFailureReturnsToDuties(t *testing.T) {
	app, err := NewApp(testTUIPorts(&fakeDrafter{}))
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	app.step = StepDrafting

	model, _ := app.Update(draftCompleted{err: errors.New("service down")})

	updated := model.(*App)
	assert.Equal(t, StepDuties, updated.Step())
	assert.ErrorContains(t, updated.Err(), "service down")
}

func TestApp_DraftCmdRendersCanonically(t *testing.T) {
	drafter := &fakeDrafter{text: "Total Points: 1250\n\n**HEADER**\nJob Series: GS-0301"}
	app, err := NewApp(testTUIPorts(drafter))
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	app.duties.SetValue("Analyses policy.")

	msg := app.draftCmd()()
	completed, ok := msg.(draftCompleted)
	require.True(t, ok)
	require.NoError(t, completed.err)

	// The canonical pass puts HEADER before the summary line.
	assert.Regexp(t, `(?s)\*\*HEADER\*\*.*\*\*Total Points: 1250\*\*`, completed.document)
}

func TestApp_RecommendCompleted(t *testing.T) {
	app, err := NewApp(testTUIPorts(&fakeDrafter{}))
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	app.step = StepDuties
	app.recommending = true

	rec := &domain.Recommendation{
		Recommendations: []domain.SeriesOption{{Code: "0301", Title: "Misc Administration"}},
		GSGrade:         "GS-12",
	}
	model, _ := app.Update(recommendCompleted{rec: rec})

	updated := model.(*App)
	assert.False(t, updated.recommending)
	view := updated.View()
	assert.Contains(t, view, "GS-0301")
	assert.Contains(t, view, "GS-12")
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app, err := NewApp(testTUIPorts(&fakeDrafter{}))
	require.NoError(t, err)
	assert.Equal(t, "Initialising...", app.View())
}
