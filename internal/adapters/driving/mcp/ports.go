package mcp

import (
	"errors"

	"github.com/openpd/pdraft/internal/core/ports/driving"
)

// ErrMissingSessionFactory indicates the server was built without a way
// to create editing sessions.
var ErrMissingSessionFactory = errors.New("mcp: session factory is required")

// Ports aggregates the driving dependencies of the MCP server.
// Each tool call gets a fresh session from the factory; MCP clients are
// expected to pass full document text with every call.
type Ports struct {
	// NewSession creates an editing session for one tool invocation.
	NewSession func() driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.NewSession == nil {
		return ErrMissingSessionFactory
	}
	return nil
}
