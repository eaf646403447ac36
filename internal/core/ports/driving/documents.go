package driving

import (
	"context"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

// DocumentsService is the cache-backed document store facade.
//
// Fetch and mutation calls hit the network and merge results into the
// shared identity map; view calls are pure reads recomputed from the
// current table contents. All documents returned anywhere are the
// canonical shared instances, mutated in place as later responses
// arrive.
type DocumentsService interface {
	// FetchPage fetches one named listing page and merges every
	// returned document into the table.
	FetchPage(ctx context.Context, page domain.NamedPage, opts domain.ListOptions) ([]*domain.Document, error)

	// FetchRecentlyViewed fetches the viewed listing and merges the
	// returned ids into the recently-viewed list.
	FetchRecentlyViewed(ctx context.Context, opts domain.ListOptions) ([]*domain.Document, error)

	// FetchStarred fetches the starred listing.
	FetchStarred(ctx context.Context, opts domain.ListOptions) ([]*domain.Document, error)

	// FetchDrafts fetches the current user's drafts.
	FetchDrafts(ctx context.Context, opts domain.ListOptions) ([]*domain.Document, error)

	// FetchPinned fetches the documents pinned in a collection.
	FetchPinned(ctx context.Context, collectionID string) ([]*domain.Document, error)

	// FetchAlphabetical fetches the list page sorted by title
	// ascending unless opts overrides the sort.
	FetchAlphabetical(ctx context.Context, opts domain.ListOptions) ([]*domain.Document, error)

	// FetchLeastRecentlyUpdated fetches the list page sorted by
	// updatedAt ascending unless opts overrides the sort.
	FetchLeastRecentlyUpdated(ctx context.Context, opts domain.ListOptions) ([]*domain.Document, error)

	// FetchRecentlyPublished fetches the list page sorted by
	// publishedAt descending unless opts overrides the sort.
	FetchRecentlyPublished(ctx context.Context, opts domain.ListOptions) ([]*domain.Document, error)

	// Fetch returns the cached document when id (or a urlId suffix)
	// resolves locally, otherwise requests it by id.
	Fetch(ctx context.Context, id string, opts domain.FetchOptions) (*domain.Document, error)

	// Prefetch requests a document in the background when it is not
	// cached. In-flight requests are not coalesced.
	Prefetch(ctx context.Context, id string)

	// Search queries the server and merges the returned page into the
	// per-query result cache at [offset, offset+limit).
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// SearchResults returns the cached result sequence for a query,
	// or an empty slice when the query has never been searched.
	SearchResults(query string) []domain.SearchResult

	// Get returns the cached document for id, or nil. Never hits the
	// network.
	Get(id string) *domain.Document

	// All returns every cached document in insertion order.
	All() []*domain.Document

	// RecentlyViewed resolves the recently-viewed ids, newest update
	// first.
	RecentlyViewed() []*domain.Document

	// RecentlyUpdated returns all documents, newest update first.
	RecentlyUpdated() []*domain.Document

	// CreatedByUser returns documents created by the user, newest
	// update first.
	CreatedByUser(userID string) []*domain.Document

	// InCollection returns published documents in the collection,
	// unordered.
	InCollection(collectionID string) []*domain.Document

	// RecentlyUpdatedInCollection returns published documents in the
	// collection, newest update first.
	RecentlyUpdatedInCollection(collectionID string) []*domain.Document

	// LeastRecentlyUpdatedInCollection returns published documents in
	// the collection, oldest update first.
	LeastRecentlyUpdatedInCollection(collectionID string) []*domain.Document

	// RecentlyPublishedInCollection returns published documents in
	// the collection, newest publication first.
	RecentlyPublishedInCollection(collectionID string) []*domain.Document

	// PinnedInCollection returns the pinned subset of the collection,
	// newest update first.
	PinnedInCollection(collectionID string) []*domain.Document

	// AlphabeticalInCollection returns published documents in the
	// collection in natural title order.
	AlphabeticalInCollection(collectionID string) []*domain.Document

	// Starred returns starred documents in table order.
	Starred() []*domain.Document

	// StarredAlphabetical returns starred documents in natural title
	// order.
	StarredAlphabetical() []*domain.Document

	// Drafts returns unpublished documents, newest update first.
	Drafts() []*domain.Document

	// Active returns the UI-selected document, or nil.
	Active() *domain.Document

	// SetActive records the UI-selected document id.
	SetActive(id string)

	// ClearActive clears the UI selection.
	ClearActive()

	// AddRecentlyViewed appends an id to the recently-viewed list,
	// dropping duplicates without reordering.
	AddRecentlyViewed(id string)

	// RecentlyViewedIDs returns the recently-viewed ids in first-seen
	// order.
	RecentlyViewedIDs() []string

	// Create creates a document and merges it into the table.
	Create(ctx context.Context, params CreateDocumentParams) (*domain.Document, error)

	// Update pushes edits to the server, patches the cached instance
	// in place and refreshes the owning collection's cached title/url.
	Update(ctx context.Context, params UpdateDocumentParams) (*domain.Document, error)

	// Move reassigns a document's parent and merges the updated
	// document.
	Move(ctx context.Context, doc *domain.Document, newParentID string) (*domain.Document, error)

	// Duplicate creates a published copy of a document in the same
	// collection and parent.
	Duplicate(ctx context.Context, doc *domain.Document) (*domain.Document, error)

	// Delete removes a document remotely, from the table and from the
	// recently-viewed list.
	Delete(ctx context.Context, doc *domain.Document) error

	// Restore applies a revision snapshot onto the cached instance in
	// place.
	Restore(ctx context.Context, doc *domain.Document, revisionID string) (*domain.Document, error)

	// Pin requests a pin. Local state is not flipped; the caller
	// mutates the instance when the request succeeds.
	Pin(ctx context.Context, id string) error

	// Unpin requests an unpin. Same local-state contract as Pin.
	Unpin(ctx context.Context, id string) error

	// Star requests a star. Same local-state contract as Pin.
	Star(ctx context.Context, id string) error

	// Unstar requests an unstar. Same local-state contract as Pin.
	Unstar(ctx context.Context, id string) error

	// Export returns the server-rendered markdown for a document.
	Export(ctx context.Context, id string) (string, error)

	// IsFetching reports whether a non-speculative request is in
	// flight.
	IsFetching() bool

	// IsLoaded reports whether any fetch has completed successfully.
	IsLoaded() bool

	// CacheVersion returns a counter bumped every time the cache is
	// mutated, so callers holding a listing can tell it went stale.
	CacheVersion() uint64
}

// CreateDocumentParams carries the fields of a document creation
// request.
type CreateDocumentParams struct {
	// Title is the document title.
	Title string `json:"title"`

	// Text is the markdown body.
	Text string `json:"text,omitempty"`

	// CollectionID is the owning collection.
	CollectionID string `json:"collectionId,omitempty"`

	// ParentDocumentID nests the document under a parent.
	ParentDocumentID string `json:"parentDocumentId,omitempty"`

	// Publish publishes immediately instead of creating a draft.
	Publish bool `json:"publish,omitempty"`
}

// UpdateDocumentParams carries the fields of a document update
// request. Zero-valued fields are omitted so the server leaves them
// untouched.
type UpdateDocumentParams struct {
	// ID is the document to update.
	ID string `json:"id"`

	// Title is the new title, if any.
	Title string `json:"title,omitempty"`

	// Text is the new markdown body, if any.
	Text string `json:"text,omitempty"`

	// LastRevision is the revision the edit was based on, for
	// conflict detection server-side.
	LastRevision int `json:"lastRevision,omitempty"`

	// Publish publishes a draft as part of the update.
	Publish *bool `json:"publish,omitempty"`
}
