package driven

import "github.com/foliohq/folio-cli/internal/core/domain"

// DocumentTable is the identity map backing the document cache.
//
// The table owns exactly one Document instance per id. Add patches the
// existing instance in place and returns it, so pointers handed out
// earlier always observe later updates. Iteration order is insertion
// order (first sighting wins).
type DocumentTable interface {
	// Add upserts a document payload and returns the canonical
	// instance for its id.
	Add(doc *domain.Document) *domain.Document

	// AddAll upserts a batch, returning canonical instances in input
	// order.
	AddAll(docs []*domain.Document) []*domain.Document

	// Get returns the document with the given id, or nil.
	Get(id string) *domain.Document

	// GetByURL returns the document whose urlId is a suffix of the
	// given id, or nil. Used to resolve share-link slugs.
	GetByURL(id string) *domain.Document

	// All returns every cached document in insertion order.
	All() []*domain.Document

	// Remove drops a document from the table.
	Remove(id string)

	// Len reports the number of cached documents.
	Len() int

	// Version returns a counter bumped on every add, patch and
	// remove. Callers compare versions to detect that cached state
	// changed underneath them; derived views do not memoize on it.
	Version() uint64

	// SetFetching flips the table-wide busy flag.
	SetFetching(fetching bool)

	// IsFetching reports whether a non-speculative request is in
	// flight.
	IsFetching() bool

	// SetLoaded marks that at least one fetch has completed.
	SetLoaded(loaded bool)

	// IsLoaded reports whether the table has seen a successful fetch.
	IsLoaded() bool
}

// CollectionTable is the identity map for collections, keyed by id.
// Same ownership rules as DocumentTable.
type CollectionTable interface {
	// Add upserts a collection payload and returns the canonical
	// instance for its id.
	Add(col *domain.Collection) *domain.Collection

	// Get returns the collection with the given id, or nil.
	Get(id string) *domain.Collection

	// All returns every cached collection in insertion order.
	All() []*domain.Collection

	// Remove drops a collection from the table.
	Remove(id string)

	// Len reports the number of cached collections.
	Len() int
}
