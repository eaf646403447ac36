package memory

import (
	"sync"

	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driven"
)

// Ensure CollectionTable implements the interface.
var _ driven.CollectionTable = (*CollectionTable)(nil)

// CollectionTable is the in-memory identity map for collections.
// Same ownership rules as DocumentTable: one instance per id, patched
// in place.
type CollectionTable struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Collection
	order []string
}

// NewCollectionTable creates an empty collection table.
func NewCollectionTable() *CollectionTable {
	return &CollectionTable{
		byID: make(map[string]*domain.Collection),
	}
}

// Add upserts a collection payload and returns the canonical instance.
func (t *CollectionTable) Add(col *domain.Collection) *domain.Collection {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.byID[col.ID]; ok {
		existing.ApplyPayload(col)
		return existing
	}
	t.byID[col.ID] = col
	t.order = append(t.order, col.ID)
	return col
}

// Get returns the collection with the given id, or nil.
func (t *CollectionTable) Get(id string) *domain.Collection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byID[id]
}

// All returns every cached collection in insertion order.
func (t *CollectionTable) All() []*domain.Collection {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*domain.Collection, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, t.byID[id])
	}
	return result
}

// Remove drops a collection from the table.
func (t *CollectionTable) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[id]; !ok {
		return
	}
	delete(t.byID, id)
	for i, colID := range t.order {
		if colID == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of cached collections.
func (t *CollectionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}
