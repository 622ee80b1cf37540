package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/core/ports/driven"
)

type fakeGenerator struct {
	text   string
	err    error
	gotReq driven.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req driven.GenerateRequest) (string, error) {
	f.gotReq = req
	return f.text, f.err
}

type fakeRecommender struct {
	rec *domain.Recommendation
	err error
}

func (f *fakeRecommender) Recommend(_ context.Context, _ string) (*domain.Recommendation, error) {
	return f.rec, f.err
}

func TestDrafter_Draft(t *testing.T) {
	gen := &fakeGenerator{text: "**HEADER**\nJob Series: GS-0301"}
	d := NewDrafter(gen, nil)

	req := driven.GenerateRequest{
		JobSeries:     "0301",
		PositionTitle: "Program Analyst",
		Duties:        "Analyses policy.",
	}
	text, err := d.Draft(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "**HEADER**\nJob Series: GS-0301", text)
	assert.Equal(t, req, gen.gotReq)
}

func TestDrafter_DraftWithoutGenerator(t *testing.T) {
	d := NewDrafter(nil, nil)
	_, err := d.Draft(context.Background(), driven.GenerateRequest{Duties: "x"})
	assert.ErrorIs(t, err, domain.ErrGeneratorUnavailable)
}

func TestDrafter_DraftRequiresDuties(t *testing.T) {
	d := NewDrafter(&fakeGenerator{}, nil)
	_, err := d.Draft(context.Background(), driven.GenerateRequest{Duties: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDrafter_DraftError(t *testing.T) {
	wantErr := errors.New("stream reset")
	d := NewDrafter(&fakeGenerator{err: wantErr}, nil)
	_, err := d.Draft(context.Background(), driven.GenerateRequest{Duties: "x"})
	assert.ErrorIs(t, err, wantErr)
}

func TestDrafter_Recommend(t *testing.T) {
	want := &domain.Recommendation{
		Recommendations: []domain.SeriesOption{{Code: "0301", Title: "Misc Administration"}},
		GSGrade:         "GS-12",
	}
	d := NewDrafter(nil, &fakeRecommender{rec: want})

	rec, err := d.Recommend(context.Background(), "Analyses policy.")
	require.NoError(t, err)
	assert.Equal(t, want, rec)
}

func TestDrafter_RecommendWithoutRecommender(t *testing.T) {
	d := NewDrafter(nil, nil)
	_, err := d.Recommend(context.Background(), "duties")
	assert.ErrorIs(t, err, domain.ErrGeneratorUnavailable)
}

func TestDrafter_RecommendRequiresDuties(t *testing.T) {
	d := NewDrafter(nil, &fakeRecommender{})
	_, err := d.Recommend(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
