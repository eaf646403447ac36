package memory

import (
	"sync"

	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driven"
)

// Ensure DocumentTable implements the interface.
var _ driven.DocumentTable = (*DocumentTable)(nil)

// DocumentTable is the in-memory identity map for documents.
//
// One instance per id: the first sighting of an id allocates the
// instance, every later sighting patches that same instance in place.
// Pointers returned from any method stay current as responses merge.
type DocumentTable struct {
	mu       sync.RWMutex
	byID     map[string]*domain.Document
	order    []string
	version  uint64
	fetching bool
	loaded   bool
}

// NewDocumentTable creates an empty document table.
func NewDocumentTable() *DocumentTable {
	return &DocumentTable{
		byID: make(map[string]*domain.Document),
	}
}

// Add upserts a document payload and returns the canonical instance.
func (t *DocumentTable) Add(doc *domain.Document) *domain.Document {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.addLocked(doc)
}

// AddAll upserts a batch under a single lock, returning canonical
// instances in input order.
func (t *DocumentTable) AddAll(docs []*domain.Document) []*domain.Document {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]*domain.Document, 0, len(docs))
	for _, doc := range docs {
		result = append(result, t.addLocked(doc))
	}
	return result
}

func (t *DocumentTable) addLocked(doc *domain.Document) *domain.Document {
	t.version++
	if existing, ok := t.byID[doc.ID]; ok {
		existing.ApplyPayload(doc)
		return existing
	}
	t.byID[doc.ID] = doc
	t.order = append(t.order, doc.ID)
	return doc
}

// Get returns the document with the given id, or nil.
func (t *DocumentTable) Get(id string) *domain.Document {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byID[id]
}

// GetByURL returns the document whose urlId is a suffix of id, or nil.
func (t *DocumentTable) GetByURL(id string) *domain.Document {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, docID := range t.order {
		if doc := t.byID[docID]; doc.MatchesURLID(id) {
			return doc
		}
	}
	return nil
}

// All returns every cached document in insertion order.
func (t *DocumentTable) All() []*domain.Document {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*domain.Document, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, t.byID[id])
	}
	return result
}

// Remove drops a document from the table.
func (t *DocumentTable) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[id]; !ok {
		return
	}
	t.version++
	delete(t.byID, id)
	for i, docID := range t.order {
		if docID == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of cached documents.
func (t *DocumentTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}

// Version returns the mutation counter.
func (t *DocumentTable) Version() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

// SetFetching flips the table-wide busy flag.
func (t *DocumentTable) SetFetching(fetching bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fetching = fetching
}

// IsFetching reports whether a non-speculative request is in flight.
func (t *DocumentTable) IsFetching() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fetching
}

// SetLoaded marks that at least one fetch has completed.
func (t *DocumentTable) SetLoaded(loaded bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loaded = loaded
}

// IsLoaded reports whether the table has seen a successful fetch.
func (t *DocumentTable) IsLoaded() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loaded
}
