package mcp

import (
	"github.com/foliohq/folio-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Documents is the cache-backed document store.
	Documents driving.DocumentsService

	// Collections resolves collection metadata for resources.
	Collections driving.CollectionsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Documents == nil {
		return ErrMissingDocumentsService
	}
	// Collections is optional; collection resources degrade to empty lists.
	return nil
}
