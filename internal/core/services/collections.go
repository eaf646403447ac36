package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driven"
	"github.com/foliohq/folio-cli/internal/core/ports/driving"
	"github.com/foliohq/folio-cli/internal/logger"
)

// Ensure CollectionsService implements the interface.
var _ driving.CollectionsService = (*CollectionsService)(nil)

// CollectionsService caches collection metadata, including each
// collection's navigation tree of document titles and urls. The
// document service calls back into it after mutations to keep those
// trees consistent.
type CollectionsService struct {
	transport driven.Transport
	table     driven.CollectionTable
}

// NewCollectionsService creates a collections service on top of the
// given transport and identity map.
func NewCollectionsService(transport driven.Transport, table driven.CollectionTable) *CollectionsService {
	return &CollectionsService{
		transport: transport,
		table:     table,
	}
}

// FetchAll lists every collection and merges them into the cache.
func (s *CollectionsService) FetchAll(ctx context.Context) ([]*domain.Collection, error) {
	logger.Section("Fetch Collections")

	payload, err := s.transport.Post(ctx, "collections.list", struct{}{})
	if err != nil {
		logger.Warn("Fetch collections failed: %v", err)
		return nil, fmt.Errorf("collections.list: %w", err)
	}
	if !payload.HasData() {
		return nil, fmt.Errorf("collections.list: %w", domain.ErrMissingData)
	}

	var cols []*domain.Collection
	if err := json.Unmarshal(payload.Data, &cols); err != nil {
		return nil, fmt.Errorf("collections.list: decode collections: %w", err)
	}

	merged := make([]*domain.Collection, 0, len(cols))
	for _, col := range cols {
		merged = append(merged, s.table.Add(col))
	}
	logger.Info("Merged %d collections", len(merged))
	return merged, nil
}

// Fetch returns the cached collection or requests it by id.
func (s *CollectionsService) Fetch(ctx context.Context, id string) (*domain.Collection, error) {
	if col := s.table.Get(id); col != nil {
		return col, nil
	}
	return s.request(ctx, id)
}

// Refresh re-fetches a collection's metadata, replacing the cached
// navigation tree.
func (s *CollectionsService) Refresh(ctx context.Context, id string) error {
	logger.Debug("Refresh collection %s", id)
	_, err := s.request(ctx, id)
	return err
}

// Get returns the cached collection for id, or nil.
func (s *CollectionsService) Get(id string) *domain.Collection {
	return s.table.Get(id)
}

// All returns every cached collection in insertion order.
func (s *CollectionsService) All() []*domain.Collection {
	return s.table.All()
}

// UpdateDocument patches the cached title and url for a document
// inside its owning collection's navigation tree. A document without
// a collection, or in a collection not yet cached, is a no-op.
func (s *CollectionsService) UpdateDocument(doc *domain.Document) {
	if doc.CollectionID == nil {
		return
	}
	col := s.table.Get(*doc.CollectionID)
	if col == nil {
		return
	}
	if col.UpdateDocument(doc) {
		logger.Debug("Patched document %s in collection %s navigation", doc.ID, col.ID)
	}
}

func (s *CollectionsService) request(ctx context.Context, id string) (*domain.Collection, error) {
	payload, err := s.transport.Post(ctx, "collections.info", map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("collections.info: %w", err)
	}
	if !payload.HasData() {
		return nil, fmt.Errorf("collections.info: %w", domain.ErrMissingData)
	}

	var col domain.Collection
	if err := json.Unmarshal(payload.Data, &col); err != nil {
		return nil, fmt.Errorf("collections.info: decode collection: %w", err)
	}
	return s.table.Add(&col), nil
}
