package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driven"
	"github.com/foliohq/folio-cli/internal/core/ports/driving"
	"github.com/foliohq/folio-cli/internal/logger"
)

// Ensure DocumentsService implements the interface.
var _ driving.DocumentsService = (*DocumentsService)(nil)

// DocumentsService is the cache-backed document store.
//
// Every response payload flows through the shared identity map, so a
// document pointer obtained from any method keeps reflecting the
// server state as later responses merge. Derived views recompute from
// the table on every call; nothing is memoized.
type DocumentsService struct {
	transport   driven.Transport
	table       driven.DocumentTable
	collections driving.CollectionsService

	recents  *recentList
	searches *searchCache

	mu       sync.RWMutex
	activeID string
}

// NewDocumentsService creates a document service on top of the given
// transport and identity map. The collections service is optional;
// without it the post-mutation collection hooks are skipped.
func NewDocumentsService(
	transport driven.Transport,
	table driven.DocumentTable,
	collections driving.CollectionsService,
) *DocumentsService {
	return &DocumentsService{
		transport:   transport,
		table:       table,
		collections: collections,
		recents:     newRecentList(),
		searches:    newSearchCache(),
	}
}

// FetchPage fetches one named listing page and merges every returned
// document into the table.
func (s *DocumentsService) FetchPage(
	ctx context.Context, page domain.NamedPage, opts domain.ListOptions,
) ([]*domain.Document, error) {
	return s.fetchNamedPage(ctx, page, opts)
}

// FetchRecentlyViewed fetches the viewed listing and merges the
// returned ids into the recently-viewed list without reordering
// already-known ids.
func (s *DocumentsService) FetchRecentlyViewed(
	ctx context.Context, opts domain.ListOptions,
) ([]*domain.Document, error) {
	docs, err := s.fetchNamedPage(ctx, domain.PageViewed, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	s.recents.addAll(ids)
	return docs, nil
}

// FetchStarred fetches the starred listing.
func (s *DocumentsService) FetchStarred(
	ctx context.Context, opts domain.ListOptions,
) ([]*domain.Document, error) {
	return s.fetchNamedPage(ctx, domain.PageStarred, opts)
}

// FetchDrafts fetches the current user's drafts.
func (s *DocumentsService) FetchDrafts(
	ctx context.Context, opts domain.ListOptions,
) ([]*domain.Document, error) {
	return s.fetchNamedPage(ctx, domain.PageDrafts, opts)
}

// FetchPinned fetches the documents pinned in a collection.
func (s *DocumentsService) FetchPinned(
	ctx context.Context, collectionID string,
) ([]*domain.Document, error) {
	return s.fetchNamedPage(ctx, domain.PagePinned, domain.ListOptions{CollectionID: collectionID})
}

// FetchAlphabetical fetches the list page sorted by title ascending.
// Sort and direction set by the caller win over the defaults.
func (s *DocumentsService) FetchAlphabetical(
	ctx context.Context, opts domain.ListOptions,
) ([]*domain.Document, error) {
	if opts.Sort == "" {
		opts.Sort = domain.SortTitle
	}
	if opts.Direction == "" {
		opts.Direction = domain.DirectionAsc
	}
	return s.fetchNamedPage(ctx, domain.PageList, opts)
}

// FetchLeastRecentlyUpdated fetches the list page sorted by updatedAt
// ascending. Sort and direction set by the caller win over the
// defaults.
func (s *DocumentsService) FetchLeastRecentlyUpdated(
	ctx context.Context, opts domain.ListOptions,
) ([]*domain.Document, error) {
	if opts.Sort == "" {
		opts.Sort = domain.SortUpdatedAt
	}
	if opts.Direction == "" {
		opts.Direction = domain.DirectionAsc
	}
	return s.fetchNamedPage(ctx, domain.PageList, opts)
}

// FetchRecentlyPublished fetches the list page sorted by publishedAt
// descending. Sort and direction set by the caller win over the
// defaults.
func (s *DocumentsService) FetchRecentlyPublished(
	ctx context.Context, opts domain.ListOptions,
) ([]*domain.Document, error) {
	if opts.Sort == "" {
		opts.Sort = domain.SortPublishedAt
	}
	if opts.Direction == "" {
		opts.Direction = domain.DirectionDesc
	}
	return s.fetchNamedPage(ctx, domain.PageList, opts)
}

// fetchNamedPage issues one listing request with the fetching flag
// held for the duration, merges the returned documents into the table
// and returns the canonical instances in response order.
func (s *DocumentsService) fetchNamedPage(
	ctx context.Context, page domain.NamedPage, opts domain.ListOptions,
) ([]*domain.Document, error) {
	if !page.Valid() {
		return nil, fmt.Errorf("%w: unknown page %q", domain.ErrInvalidInput, string(page))
	}

	logger.Section("Fetch " + page.Endpoint())
	logger.Debug("Options: offset=%d limit=%d sort=%q direction=%q collection=%q",
		opts.Offset, opts.Limit, opts.Sort, opts.Direction, opts.CollectionID)

	s.table.SetFetching(true)
	defer s.table.SetFetching(false)

	payload, err := s.transport.Post(ctx, page.Endpoint(), opts)
	if err != nil {
		logger.Warn("Fetch %s failed: %v", page.Endpoint(), err)
		return nil, fmt.Errorf("%s: %w", page.Endpoint(), err)
	}
	if !payload.HasData() {
		return nil, fmt.Errorf("%s: %w", page.Endpoint(), domain.ErrMissingData)
	}

	var docs []*domain.Document
	if err := json.Unmarshal(payload.Data, &docs); err != nil {
		return nil, fmt.Errorf("%s: decode documents: %w", page.Endpoint(), err)
	}

	merged := s.table.AddAll(docs)
	s.table.SetLoaded(true)
	logger.Info("Merged %d documents from %s", len(merged), page.Endpoint())
	return merged, nil
}

// Fetch returns the cached document when id resolves locally, by id or
// urlId suffix, and requests it by id otherwise.
func (s *DocumentsService) Fetch(
	ctx context.Context, id string, opts domain.FetchOptions,
) (*domain.Document, error) {
	if doc := s.table.Get(id); doc != nil {
		logger.Debug("Fetch %s: cache hit", id)
		return doc, nil
	}
	if doc := s.table.GetByURL(id); doc != nil {
		logger.Debug("Fetch %s: cache hit via urlId %s", id, doc.URLID)
		return doc, nil
	}

	if !opts.Prefetch {
		s.table.SetFetching(true)
		defer s.table.SetFetching(false)
	}

	body := map[string]string{"id": id}
	if opts.ShareID != "" {
		body["shareId"] = opts.ShareID
	}

	payload, err := s.transport.Post(ctx, "documents.info", body)
	if err != nil {
		logger.Warn("Fetch %s failed: %v", id, err)
		return nil, fmt.Errorf("documents.info: %w", err)
	}
	if !payload.HasData() {
		return nil, fmt.Errorf("documents.info: %w", domain.ErrMissingData)
	}

	var doc domain.Document
	if err := json.Unmarshal(payload.Data, &doc); err != nil {
		return nil, fmt.Errorf("documents.info: decode document: %w", err)
	}

	merged := s.table.Add(&doc)
	s.table.SetLoaded(true)
	logger.Debug("Fetch %s: merged from server", merged.ID)
	return merged, nil
}

// Prefetch requests a document speculatively when it is not cached.
// Concurrent prefetches of the same id are not coalesced; each absent
// lookup issues its own request.
func (s *DocumentsService) Prefetch(ctx context.Context, id string) {
	if s.table.Get(id) != nil {
		return
	}
	if _, err := s.Fetch(ctx, id, domain.FetchOptions{Prefetch: true}); err != nil {
		logger.Debug("Prefetch %s failed: %v", id, err)
	}
}

// Search queries the server, merges every returned document into the
// table, and splices the page into the per-query result cache at
// [offset, offset+limit). Results whose document cannot be resolved
// are dropped.
func (s *DocumentsService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Documents")
	logger.Debug("Query: %q offset=%d limit=%d", query, opts.Offset, opts.Limit)

	params := map[string]string{"query": query}
	if opts.Offset > 0 {
		params["offset"] = strconv.Itoa(opts.Offset)
	}
	if opts.Limit > 0 {
		params["limit"] = strconv.Itoa(opts.Limit)
	}

	payload, err := s.transport.Get(ctx, "documents.search", params)
	if err != nil {
		logger.Warn("Search %q failed: %v", query, err)
		return nil, fmt.Errorf("documents.search: %w", err)
	}
	if !payload.HasData() {
		return nil, fmt.Errorf("documents.search: %w", domain.ErrMissingData)
	}

	var page []domain.SearchResult
	if err := json.Unmarshal(payload.Data, &page); err != nil {
		return nil, fmt.Errorf("documents.search: decode results: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(page))
	for _, result := range page {
		if result.Document == nil {
			continue
		}
		result.Document = s.table.Add(result.Document)
		results = append(results, result)
	}

	s.searches.merge(query, results, opts.Offset, opts.Limit)
	logger.Info("Search %q: merged %d results at offset %d", query, len(results), opts.Offset)
	return results, nil
}

// SearchResults returns the cached result sequence for query, empty
// when the query has never been searched.
func (s *DocumentsService) SearchResults(query string) []domain.SearchResult {
	return s.searches.results(query)
}

// Get returns the cached document for id, or nil.
func (s *DocumentsService) Get(id string) *domain.Document {
	return s.table.Get(id)
}

// All returns every cached document in insertion order.
func (s *DocumentsService) All() []*domain.Document {
	return s.table.All()
}

// Active returns the UI-selected document, or nil when nothing is
// selected or the selection has been deleted.
func (s *DocumentsService) Active() *domain.Document {
	s.mu.RLock()
	id := s.activeID
	s.mu.RUnlock()

	if id == "" {
		return nil
	}
	return s.table.Get(id)
}

// SetActive records the UI-selected document id.
func (s *DocumentsService) SetActive(id string) {
	s.mu.Lock()
	s.activeID = id
	s.mu.Unlock()
}

// ClearActive clears the UI selection.
func (s *DocumentsService) ClearActive() {
	s.SetActive("")
}

// AddRecentlyViewed appends an id to the recently-viewed list. A
// repeat view neither duplicates nor reorders the entry.
func (s *DocumentsService) AddRecentlyViewed(id string) {
	s.recents.add(id)
}

// RecentlyViewedIDs returns the recently-viewed ids in first-seen
// order.
func (s *DocumentsService) RecentlyViewedIDs() []string {
	return s.recents.all()
}

// Create creates a document and merges it into the table.
func (s *DocumentsService) Create(
	ctx context.Context, params driving.CreateDocumentParams,
) (*domain.Document, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	logger.Section("Create Document")
	logger.Debug("Title: %q collection=%q parent=%q publish=%t",
		params.Title, params.CollectionID, params.ParentDocumentID, params.Publish)

	doc, err := s.postDocument(ctx, "documents.create", params)
	if err != nil {
		return nil, err
	}
	logger.Info("Created document %s", doc.ID)
	return doc, nil
}

// Update pushes edits to the server, patches the cached instance in
// place and updates the owning collection's cached title and url.
func (s *DocumentsService) Update(
	ctx context.Context, params driving.UpdateDocumentParams,
) (*domain.Document, error) {
	if params.ID == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	logger.Section("Update Document")
	logger.Debug("ID: %s lastRevision=%d", params.ID, params.LastRevision)

	doc, err := s.postDocument(ctx, "documents.update", params)
	if err != nil {
		return nil, err
	}

	// The collection caches document titles and urls in its own
	// navigation tree, which this update just invalidated.
	if s.collections != nil {
		s.collections.UpdateDocument(doc)
	}
	logger.Info("Updated document %s", doc.ID)
	return doc, nil
}

// Move reassigns a document's parent, refreshes the owning collection
// best effort, and merges the updated document.
func (s *DocumentsService) Move(
	ctx context.Context, doc *domain.Document, newParentID string,
) (*domain.Document, error) {
	logger.Section("Move Document")
	logger.Debug("ID: %s newParent=%q", doc.ID, newParentID)

	body := map[string]string{"id": doc.ID}
	if newParentID != "" {
		body["parentDocumentId"] = newParentID
	}

	payload, err := s.transport.Post(ctx, "documents.move", body)
	if err != nil {
		return nil, fmt.Errorf("documents.move: %w", err)
	}

	s.refreshOwningCollection(ctx, doc)

	if !payload.HasData() {
		return nil, fmt.Errorf("documents.move: %w", domain.ErrMissingData)
	}

	var moved domain.Document
	if err := json.Unmarshal(payload.Data, &moved); err != nil {
		return nil, fmt.Errorf("documents.move: decode document: %w", err)
	}

	merged := s.table.Add(&moved)
	logger.Info("Moved document %s", merged.ID)
	return merged, nil
}

// Duplicate creates a published copy of doc with the same text,
// collection and parent, refreshing the owning collection best effort.
func (s *DocumentsService) Duplicate(
	ctx context.Context, doc *domain.Document,
) (*domain.Document, error) {
	logger.Section("Duplicate Document")
	logger.Debug("ID: %s", doc.ID)

	params := driving.CreateDocumentParams{
		Title:   doc.Title + " (duplicate)",
		Text:    doc.Text,
		Publish: true,
	}
	if doc.CollectionID != nil {
		params.CollectionID = *doc.CollectionID
	}
	if doc.ParentDocumentID != nil {
		params.ParentDocumentID = *doc.ParentDocumentID
	}

	payload, err := s.transport.Post(ctx, "documents.create", params)
	if err != nil {
		return nil, fmt.Errorf("documents.create: %w", err)
	}

	s.refreshOwningCollection(ctx, doc)

	if !payload.HasData() {
		return nil, fmt.Errorf("documents.create: %w", domain.ErrMissingData)
	}

	var dup domain.Document
	if err := json.Unmarshal(payload.Data, &dup); err != nil {
		return nil, fmt.Errorf("documents.create: decode document: %w", err)
	}

	merged := s.table.Add(&dup)
	logger.Info("Duplicated document %s as %s", doc.ID, merged.ID)
	return merged, nil
}

// Delete removes the document remotely, drops it from the table and
// the recently-viewed list, and refreshes the owning collection best
// effort. Search cache entries are not rewritten; a deleted result
// keeps its slot until the query is searched again.
func (s *DocumentsService) Delete(ctx context.Context, doc *domain.Document) error {
	logger.Section("Delete Document")
	logger.Debug("ID: %s", doc.ID)

	if _, err := s.transport.Post(ctx, "documents.delete", map[string]string{"id": doc.ID}); err != nil {
		return fmt.Errorf("documents.delete: %w", err)
	}

	s.table.Remove(doc.ID)
	s.recents.remove(doc.ID)
	s.refreshOwningCollection(ctx, doc)
	logger.Info("Deleted document %s", doc.ID)
	return nil
}

// Restore applies a revision snapshot onto the cached instance in
// place, so live references and views observe the rollback.
func (s *DocumentsService) Restore(
	ctx context.Context, doc *domain.Document, revisionID string,
) (*domain.Document, error) {
	logger.Section("Restore Document")
	logger.Debug("ID: %s revision=%s", doc.ID, revisionID)

	body := map[string]string{"id": doc.ID, "revisionId": revisionID}
	payload, err := s.transport.Post(ctx, "documents.restore", body)
	if err != nil {
		return nil, fmt.Errorf("documents.restore: %w", err)
	}
	if !payload.HasData() {
		return nil, fmt.Errorf("documents.restore: %w", domain.ErrMissingData)
	}

	var snapshot domain.Document
	if err := json.Unmarshal(payload.Data, &snapshot); err != nil {
		return nil, fmt.Errorf("documents.restore: decode document: %w", err)
	}

	merged := s.table.Add(&snapshot)
	logger.Info("Restored document %s to revision %s", merged.ID, revisionID)
	return merged, nil
}

// Pin requests a pin for the document. The cached pinned flag is not
// flipped here; the caller owns the local state change.
func (s *DocumentsService) Pin(ctx context.Context, id string) error {
	return s.flagRequest(ctx, "documents.pin", id)
}

// Unpin requests an unpin. Same local-state contract as Pin.
func (s *DocumentsService) Unpin(ctx context.Context, id string) error {
	return s.flagRequest(ctx, "documents.unpin", id)
}

// Star requests a star. Same local-state contract as Pin.
func (s *DocumentsService) Star(ctx context.Context, id string) error {
	return s.flagRequest(ctx, "documents.star", id)
}

// Unstar requests an unstar. Same local-state contract as Pin.
func (s *DocumentsService) Unstar(ctx context.Context, id string) error {
	return s.flagRequest(ctx, "documents.unstar", id)
}

// Export returns the server-rendered markdown for a document.
func (s *DocumentsService) Export(ctx context.Context, id string) (string, error) {
	logger.Debug("Export document %s", id)

	payload, err := s.transport.Post(ctx, "documents.export", map[string]string{"id": id})
	if err != nil {
		return "", fmt.Errorf("documents.export: %w", err)
	}
	if !payload.HasData() {
		return "", fmt.Errorf("documents.export: %w", domain.ErrMissingData)
	}

	var markdown string
	if err := json.Unmarshal(payload.Data, &markdown); err != nil {
		return "", fmt.Errorf("documents.export: decode markdown: %w", err)
	}
	return markdown, nil
}

// IsFetching reports whether a non-speculative request is in flight.
func (s *DocumentsService) IsFetching() bool {
	return s.table.IsFetching()
}

// IsLoaded reports whether any fetch has completed successfully.
func (s *DocumentsService) IsLoaded() bool {
	return s.table.IsLoaded()
}

// CacheVersion returns the table's mutation counter.
func (s *DocumentsService) CacheVersion() uint64 {
	return s.table.Version()
}

// postDocument issues a single-document mutation and merges the
// returned payload into the table.
func (s *DocumentsService) postDocument(
	ctx context.Context, path string, body any,
) (*domain.Document, error) {
	payload, err := s.transport.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !payload.HasData() {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrMissingData)
	}

	var doc domain.Document
	if err := json.Unmarshal(payload.Data, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode document: %w", path, err)
	}
	return s.table.Add(&doc), nil
}

// refreshOwningCollection re-fetches the collection a document lives
// in. Failures are logged and swallowed; the mutation already
// succeeded and the collection cache heals on its next fetch.
func (s *DocumentsService) refreshOwningCollection(ctx context.Context, doc *domain.Document) {
	if s.collections == nil || doc.CollectionID == nil {
		return
	}
	if err := s.collections.Refresh(ctx, *doc.CollectionID); err != nil {
		logger.Warn("Refresh collection %s: %v", *doc.CollectionID, err)
	}
}

// flagRequest posts a fire-and-forget pin/star toggle by document id.
func (s *DocumentsService) flagRequest(ctx context.Context, path, id string) error {
	logger.Debug("%s: %s", path, id)
	if _, err := s.transport.Post(ctx, path, map[string]string{"id": id}); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
