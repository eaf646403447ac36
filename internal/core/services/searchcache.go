package services

import (
	"sync"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

// searchCache keeps one result sequence per query string, built up
// from possibly overlapping, out-of-order pages. Entries hold live
// document references and are never invalidated by entity mutation.
type searchCache struct {
	mu      sync.RWMutex
	entries map[string][]domain.SearchResult
}

func newSearchCache() *searchCache {
	return &searchCache{entries: make(map[string][]domain.SearchResult)}
}

// merge overwrites the window [offset, offset+limit) of the cached
// sequence for query with page. The sequence grows when the page runs
// past the current end and never shrinks; an offset beyond the end
// appends. A zero limit inserts without consuming existing results.
func (c *searchCache) merge(query string, page []domain.SearchResult, offset, limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seq := c.entries[query]
	if offset < 0 {
		offset = 0
	}
	if offset > len(seq) {
		offset = len(seq)
	}
	if limit < 0 {
		limit = 0
	}
	end := offset + limit
	if end > len(seq) {
		end = len(seq)
	}

	merged := make([]domain.SearchResult, 0, offset+len(page)+len(seq)-end)
	merged = append(merged, seq[:offset]...)
	merged = append(merged, page...)
	merged = append(merged, seq[end:]...)
	c.entries[query] = merged
}

// results returns a copy of the cached sequence for query, empty when
// the query has never been searched.
func (c *searchCache) results(query string) []domain.SearchResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seq := c.entries[query]
	out := make([]domain.SearchResult, len(seq))
	copy(out, seq)
	return out
}
