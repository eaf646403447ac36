package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/foliohq/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driven"
	"github.com/foliohq/folio-cli/internal/core/services"
)

// fakeTransport serves canned payloads keyed by endpoint and records
// the endpoints called.
type fakeTransport struct {
	mu        sync.Mutex
	responses map[string]*driven.Payload
	errs      map[string]error
	calls     []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		responses: make(map[string]*driven.Payload),
		errs:      make(map[string]error),
	}
}

func (f *fakeTransport) respond(endpoint string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	f.responses[endpoint] = &driven.Payload{OK: true, Status: 200, Data: data}
}

func (f *fakeTransport) fail(endpoint string, err error) {
	f.errs[endpoint] = err
}

func (f *fakeTransport) roundTrip(path string) (*driven.Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if p, ok := f.responses[path]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unexpected endpoint: %s", path)
}

func (f *fakeTransport) Post(_ context.Context, path string, _ any) (*driven.Payload, error) {
	return f.roundTrip(path)
}

func (f *fakeTransport) Get(_ context.Context, path string, _ map[string]string) (*driven.Payload, error) {
	return f.roundTrip(path)
}

func (f *fakeTransport) called(endpoint string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == endpoint {
			return true
		}
	}
	return false
}

func fixtureDoc(id, title string) *domain.Document {
	col := "col-1"
	pub := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	return &domain.Document{
		ID:           id,
		URLID:        "urlid-" + id,
		Title:        title,
		Text:         "# " + title + "\n\nBody of " + title + ".",
		CollectionID: &col,
		URL:          "/doc/urlid-" + id,
		CreatedAt:    time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC),
		PublishedAt:  &pub,
	}
}

// newTestPorts builds real services over a fake transport with a small
// fixture set, the same wiring the CLI uses in production.
func newTestPorts() (*Ports, *fakeTransport) {
	doc1 := fixtureDoc("doc-1", "Release Checklist")
	doc2 := fixtureDoc("doc-2", "Team Handbook")

	transport := newFakeTransport()
	transport.respond("documents.list", []*domain.Document{doc1, doc2})
	transport.respond("documents.viewed", []*domain.Document{doc2, doc1})
	transport.respond("documents.info", doc1)
	transport.respond("documents.search", []domain.SearchResult{
		{Ranking: 0.88, Context: "…the <b>release</b> steps…", Document: doc1},
	})
	transport.respond("collections.list", []*domain.Collection{
		{ID: "col-1", Name: "Engineering"},
	})

	colTable := memory.NewCollectionTable()
	docTable := memory.NewDocumentTable()
	collections := services.NewCollectionsService(transport, colTable)
	documents := services.NewDocumentsService(transport, docTable, collections)

	return &Ports{Documents: documents, Collections: collections}, transport
}
