package driving

import (
	"context"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

// CollectionsService caches collection metadata alongside the
// document store and keeps its navigation trees consistent after
// document mutations.
type CollectionsService interface {
	// FetchAll lists every collection and merges them into the cache.
	FetchAll(ctx context.Context) ([]*domain.Collection, error)

	// Fetch returns the cached collection or requests it by id.
	Fetch(ctx context.Context, id string) (*domain.Collection, error)

	// Refresh re-fetches a collection's metadata, replacing the
	// cached navigation tree. Best effort after document mutations.
	Refresh(ctx context.Context, id string) error

	// Get returns the cached collection for id, or nil.
	Get(id string) *domain.Collection

	// All returns every cached collection in insertion order.
	All() []*domain.Collection

	// UpdateDocument patches the cached title/url for a document
	// inside its owning collection's navigation tree.
	UpdateDocument(doc *domain.Document)
}
