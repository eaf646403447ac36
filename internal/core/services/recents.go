package services

import "sync"

// recentList tracks recently-viewed document ids in first-seen order.
// Repeat views do not reorder: the list is append-with-dedupe, ids are
// only removed when the document is deleted.
type recentList struct {
	mu   sync.RWMutex
	ids  []string
	seen map[string]bool
}

func newRecentList() *recentList {
	return &recentList{seen: make(map[string]bool)}
}

// add appends id unless it is already present.
func (r *recentList) add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(id)
}

// addAll merges ids with set-union semantics, keeping existing
// positions.
func (r *recentList) addAll(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		r.addLocked(id)
	}
}

func (r *recentList) addLocked(id string) {
	if id == "" || r.seen[id] {
		return
	}
	r.seen[id] = true
	r.ids = append(r.ids, id)
}

// remove drops id from the list.
func (r *recentList) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.seen[id] {
		return
	}
	delete(r.seen, id)
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
}

// all returns a copy of the ids in first-seen order.
func (r *recentList) all() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}
