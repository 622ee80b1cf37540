package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/core/ports/driven"
	"github.com/openpd/pdraft/internal/logger"
)

// Drafter drives the AI collaborators: full document generation and
// series/grade recommendation.
type Drafter struct {
	generator   driven.Generator
	recommender driven.Recommender
}

// NewDrafter creates a drafting service. Either collaborator may be
// nil; the corresponding operation returns ErrGeneratorUnavailable.
func NewDrafter(generator driven.Generator, recommender driven.Recommender) *Drafter {
	return &Drafter{generator: generator, recommender: recommender}
}

// Draft requests a full document draft and returns the accumulated raw
// text once the stream has completed. The caller feeds the result into
// a session; partial streams are never parsed.
func (d *Drafter) Draft(ctx context.Context, req driven.GenerateRequest) (string, error) {
	if d.generator == nil {
		return "", domain.ErrGeneratorUnavailable
	}
	if strings.TrimSpace(req.Duties) == "" {
		return "", fmt.Errorf("%w: duties text required", domain.ErrInvalidInput)
	}

	logger.Debug("requesting draft for series %s title %q", req.JobSeries, req.PositionTitle)
	text, err := d.generator.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generating draft: %w", err)
	}
	logger.Debug("draft stream complete, %d bytes", len(text))
	return text, nil
}

// Recommend returns classification recommendations for duties text.
func (d *Drafter) Recommend(ctx context.Context, duties string) (*domain.Recommendation, error) {
	if d.recommender == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if strings.TrimSpace(duties) == "" {
		return nil, fmt.Errorf("%w: duties text required", domain.ErrInvalidInput)
	}
	rec, err := d.recommender.Recommend(ctx, duties)
	if err != nil {
		return nil, fmt.Errorf("recommending series: %w", err)
	}
	return rec, nil
}
