package tui

import (
	"context"
	"errors"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/core/ports/driven"
	"github.com/openpd/pdraft/internal/core/ports/driving"
)

// Validation errors.
var (
	ErrMissingDraftService   = errors.New("tui: draft service is required")
	ErrMissingSessionFactory = errors.New("tui: session factory is required")
)

// DraftService is the drafting surface the wizard drives.
type DraftService interface {
	Draft(ctx context.Context, req driven.GenerateRequest) (string, error)
	Recommend(ctx context.Context, duties string) (*domain.Recommendation, error)
}

// Ports aggregates the driving dependencies of the TUI.
type Ports struct {
	// Drafter produces drafts and classification recommendations.
	Drafter DraftService

	// NewSession creates an editing session for the drafted document.
	NewSession func() driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Drafter == nil {
		return ErrMissingDraftService
	}
	if p.NewSession == nil {
		return ErrMissingSessionFactory
	}
	return nil
}
