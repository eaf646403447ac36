// Package tui provides an interactive terminal user interface for folio.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/foliohq/folio-cli/internal/core/ports/driven"
	"github.com/foliohq/folio-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Documents is the cache-backed document store the TUI browses
	// and searches.
	Documents driving.DocumentsService

	// Collections resolves collection names for the browse tabs.
	Collections driving.CollectionsService

	// Config supplies the workspace URL for building document links.
	Config driven.ConfigStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Documents == nil {
		return ErrMissingDocumentsService
	}
	// Collections and Config are optional: without them the TUI
	// shows no collection tabs and yanks server-relative URLs.
	return nil
}
