package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driven"
	"github.com/foliohq/folio-cli/internal/core/ports/driving"
)

// transportCall records one request seen by the mock transport.
type transportCall struct {
	method string
	path   string
	body   any
	params map[string]string
}

// mockTransport scripts envelope responses per endpoint and records
// every call.
type mockTransport struct {
	mu        sync.Mutex
	responses map[string]*driven.Payload
	errs      map[string]error
	calls     []transportCall

	// handle, when set, answers every request instead of the maps.
	handle func(call transportCall) (*driven.Payload, error)

	// onCall runs for every request before the response is chosen.
	onCall func(call transportCall)
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		responses: make(map[string]*driven.Payload),
		errs:      make(map[string]error),
	}
}

// respond scripts a success envelope whose data is the JSON encoding
// of v.
func (m *mockTransport) respond(path string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	m.responses[path] = &driven.Payload{OK: true, Status: 200, Data: raw}
}

// respondEmpty scripts a success envelope with no data field.
func (m *mockTransport) respondEmpty(path string) {
	m.responses[path] = &driven.Payload{OK: true, Status: 200}
}

// fail scripts a transport error for path.
func (m *mockTransport) fail(path string, err error) {
	m.errs[path] = err
}

func (m *mockTransport) Post(_ context.Context, path string, body any) (*driven.Payload, error) {
	return m.roundTrip(transportCall{method: "POST", path: path, body: body})
}

func (m *mockTransport) Get(_ context.Context, path string, params map[string]string) (*driven.Payload, error) {
	return m.roundTrip(transportCall{method: "GET", path: path, params: params})
}

func (m *mockTransport) roundTrip(call transportCall) (*driven.Payload, error) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	onCall := m.onCall
	handle := m.handle
	m.mu.Unlock()

	if onCall != nil {
		onCall(call)
	}
	if handle != nil {
		return handle(call)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs[call.path]; err != nil {
		return nil, err
	}
	if p := m.responses[call.path]; p != nil {
		return p, nil
	}
	return &driven.Payload{OK: true, Status: 200}, nil
}

func (m *mockTransport) callCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.path == path {
			n++
		}
	}
	return n
}

func (m *mockTransport) lastCall(path string) (transportCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].path == path {
			return m.calls[i], true
		}
	}
	return transportCall{}, false
}

// mockCollections records consistency-hook invocations.
type mockCollections struct {
	mu         sync.Mutex
	refreshed  []string
	updated    []*domain.Document
	refreshErr error
}

var _ driving.CollectionsService = (*mockCollections)(nil)

func (m *mockCollections) FetchAll(context.Context) ([]*domain.Collection, error) { return nil, nil }
func (m *mockCollections) Fetch(context.Context, string) (*domain.Collection, error) {
	return nil, nil
}
func (m *mockCollections) Get(string) *domain.Collection  { return nil }
func (m *mockCollections) All() []*domain.Collection      { return nil }
func (m *mockCollections) Refresh(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshed = append(m.refreshed, id)
	return m.refreshErr
}
func (m *mockCollections) UpdateDocument(doc *domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = append(m.updated, doc)
}

func newTestService(t *testing.T) (*DocumentsService, *mockTransport, *memory.DocumentTable, *mockCollections) {
	t.Helper()
	transport := newMockTransport()
	table := memory.NewDocumentTable()
	collections := &mockCollections{}
	svc := NewDocumentsService(transport, table, collections)
	return svc, transport, table, collections
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestNewDocumentsService(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	require.NotNil(t, svc)
	assert.False(t, svc.IsFetching())
	assert.False(t, svc.IsLoaded())
}

func TestDocumentsService_FetchPage_MergesIntoTable(t *testing.T) {
	svc, transport, table, _ := newTestService(t)
	ctx := context.Background()

	transport.respond("documents.list", []*domain.Document{
		{ID: "doc-1", Title: "One"},
		{ID: "doc-2", Title: "Two"},
	})

	docs, err := svc.FetchPage(ctx, domain.PageList, domain.ListOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Verify returned instances are the canonical table instances
	assert.Same(t, table.Get("doc-1"), docs[0])
	assert.Same(t, table.Get("doc-2"), docs[1])
	assert.True(t, svc.IsLoaded())
	assert.False(t, svc.IsFetching())
}

func TestDocumentsService_CacheVersion_TracksMerges(t *testing.T) {
	svc, transport, table, _ := newTestService(t)
	ctx := context.Background()

	assert.Equal(t, uint64(0), svc.CacheVersion())

	transport.respond("documents.list", []*domain.Document{
		{ID: "doc-1", Title: "One"},
		{ID: "doc-2", Title: "Two"},
	})
	_, err := svc.FetchPage(ctx, domain.PageList, domain.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), svc.CacheVersion())
	assert.Equal(t, table.Version(), svc.CacheVersion())

	// Pure reads leave the counter alone.
	svc.RecentlyUpdated()
	svc.Get("doc-1")
	assert.Equal(t, uint64(2), svc.CacheVersion())
}

func TestDocumentsService_FetchPage_PatchesExistingInstance(t *testing.T) {
	svc, transport, table, _ := newTestService(t)
	ctx := context.Background()

	held := table.Add(&domain.Document{ID: "doc-1", Title: "Stale"})
	transport.respond("documents.list", []*domain.Document{
		{ID: "doc-1", Title: "Fresh"},
	})

	docs, err := svc.FetchPage(ctx, domain.PageList, domain.ListOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Same(t, held, docs[0])
	assert.Equal(t, "Fresh", held.Title)
}

func TestDocumentsService_FetchPage_SetsFetchingDuringRequest(t *testing.T) {
	svc, transport, _, _ := newTestService(t)
	ctx := context.Background()

	var fetchingDuring bool
	transport.onCall = func(transportCall) {
		fetchingDuring = svc.IsFetching()
	}
	transport.respond("documents.list", []*domain.Document{})

	_, err := svc.FetchPage(ctx, domain.PageList, domain.ListOptions{})
	require.NoError(t, err)

	assert.True(t, fetchingDuring)
	assert.False(t, svc.IsFetching())
}

func TestDocumentsService_FetchPage_ClearsFetchingOnError(t *testing.T) {
	svc, transport, _, _ := newTestService(t)
	ctx := context.Background()

	transport.fail("documents.list", errors.New("connection refused"))

	_, err := svc.FetchPage(ctx, domain.PageList, domain.ListOptions{})
	require.Error(t, err)

	// Verify guaranteed cleanup ran
	assert.False(t, svc.IsFetching())
	assert.False(t, svc.IsLoaded())
}

func TestDocumentsService_FetchPage_MissingData(t *testing.T) {
	svc, transport, _, _ := newTestService(t)
	ctx := context.Background()

	transport.respondEmpty("documents.list")

	_, err := svc.FetchPage(ctx, domain.PageList, domain.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrMissingData)
	assert.False(t, svc.IsFetching())
}

func TestDocumentsService_FetchPage_UnknownPage(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	_, err := svc.FetchPage(context.Background(), domain.NamedPage("archive"), domain.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, transport.callCount("documents.archive"))
}

func TestDocumentsService_FetchRecentlyViewed_MergesIDs(t *testing.T) {
	svc, transport, _, _ := newTestService(t)
	ctx := context.Background()

	transport.respond("documents.viewed", []*domain.Document{
		{ID: "doc-1"}, {ID: "doc-2"},
	})
	_, err := svc.FetchRecentlyViewed(ctx, domain.ListOptions{})
	require.NoError(t, err)

	// Overlapping second page must union without reordering
	transport.respond("documents.viewed", []*domain.Document{
		{ID: "doc-2"}, {ID: "doc-3"},
	})
	_, err = svc.FetchRecentlyViewed(ctx, domain.ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"doc-1", "doc-2", "doc-3"}, svc.RecentlyViewedIDs())
}

func TestDocumentsService_FetchWrappers_Defaults(t *testing.T) {
	tests := []struct {
		name          string
		fetch         func(*DocumentsService, context.Context, domain.ListOptions) ([]*domain.Document, error)
		wantSort      string
		wantDirection domain.Direction
	}{
		{
			name: "alphabetical",
			fetch: func(s *DocumentsService, ctx context.Context, o domain.ListOptions) ([]*domain.Document, error) {
				return s.FetchAlphabetical(ctx, o)
			},
			wantSort:      domain.SortTitle,
			wantDirection: domain.DirectionAsc,
		},
		{
			name: "least recently updated",
			fetch: func(s *DocumentsService, ctx context.Context, o domain.ListOptions) ([]*domain.Document, error) {
				return s.FetchLeastRecentlyUpdated(ctx, o)
			},
			wantSort:      domain.SortUpdatedAt,
			wantDirection: domain.DirectionAsc,
		},
		{
			name: "recently published",
			fetch: func(s *DocumentsService, ctx context.Context, o domain.ListOptions) ([]*domain.Document, error) {
				return s.FetchRecentlyPublished(ctx, o)
			},
			wantSort:      domain.SortPublishedAt,
			wantDirection: domain.DirectionDesc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, transport, _, _ := newTestService(t)
			transport.respond("documents.list", []*domain.Document{})

			_, err := tt.fetch(svc, context.Background(), domain.ListOptions{})
			require.NoError(t, err)

			call, ok := transport.lastCall("documents.list")
			require.True(t, ok)
			opts, ok := call.body.(domain.ListOptions)
			require.True(t, ok)
			assert.Equal(t, tt.wantSort, opts.Sort)
			assert.Equal(t, tt.wantDirection, opts.Direction)
		})
	}
}

func TestDocumentsService_FetchAlphabetical_CallerOverrides(t *testing.T) {
	svc, transport, _, _ := newTestService(t)
	transport.respond("documents.list", []*domain.Document{})

	_, err := svc.FetchAlphabetical(context.Background(), domain.ListOptions{
		Sort:      domain.SortCreatedAt,
		Direction: domain.DirectionDesc,
	})
	require.NoError(t, err)

	call, _ := transport.lastCall("documents.list")
	opts := call.body.(domain.ListOptions)
	assert.Equal(t, domain.SortCreatedAt, opts.Sort)
	assert.Equal(t, domain.DirectionDesc, opts.Direction)
}

func TestDocumentsService_FetchPinned_SendsCollectionID(t *testing.T) {
	svc, transport, _, _ := newTestService(t)
	transport.respond("documents.pinned", []*domain.Document{})

	_, err := svc.FetchPinned(context.Background(), "col-1")
	require.NoError(t, err)

	call, ok := transport.lastCall("documents.pinned")
	require.True(t, ok)
	opts := call.body.(domain.ListOptions)
	assert.Equal(t, "col-1", opts.CollectionID)
}

func TestDocumentsService_Fetch_CacheHitByID(t *testing.T) {
	svc, transport, table, _ := newTestService(t)

	doc := table.Add(&domain.Document{ID: "doc-1", Title: "Cached"})

	got, err := svc.Fetch(context.Background(), "doc-1", domain.FetchOptions{})
	require.NoError(t, err)
	assert.Same(t, doc, got)
	assert.Equal(t, 0, transport.callCount("documents.info"))
}

func TestDocumentsService_Fetch_CacheHitByURLID(t *testing.T) {
	svc, transport, table, _ := newTestService(t)

	doc := table.Add(&domain.Document{ID: "doc-1", URLID: "hDmcV9SHEe"})

	got, err := svc.Fetch(context.Background(), "quarterly-report-hDmcV9SHEe", domain.FetchOptions{})
	require.NoError(t, err)
	assert.Same(t, doc, got)
	assert.Equal(t, 0, transport.callCount("documents.info"))
}

func TestDocumentsService_Fetch_RequestsWhenAbsent(t *testing.T) {
	svc, transport, table, _ := newTestService(t)

	transport.respond("documents.info", &domain.Document{ID: "doc-1", Title: "Fetched"})

	got, err := svc.Fetch(context.Background(), "doc-1", domain.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Fetched", got.Title)
	assert.Same(t, table.Get("doc-1"), got)
	assert.True(t, svc.IsLoaded())

	call, _ := transport.lastCall("documents.info")
	body := call.body.(map[string]string)
	assert.Equal(t, "doc-1", body["id"])
	_, hasShare := body["shareId"]
	assert.False(t, hasShare)
}

func TestDocumentsService_Fetch_ShareID(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	transport.respond("documents.info", &domain.Document{ID: "doc-1"})

	_, err := svc.Fetch(context.Background(), "doc-1", domain.FetchOptions{ShareID: "share-9"})
	require.NoError(t, err)

	call, _ := transport.lastCall("documents.info")
	body := call.body.(map[string]string)
	assert.Equal(t, "share-9", body["shareId"])
}

func TestDocumentsService_Fetch_MissingData(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	transport.respondEmpty("documents.info")

	_, err := svc.Fetch(context.Background(), "doc-1", domain.FetchOptions{})
	assert.ErrorIs(t, err, domain.ErrMissingData)
	assert.False(t, svc.IsFetching())
}

func TestDocumentsService_Fetch_PrefetchSkipsFetchingFlag(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	var fetchingDuring bool
	transport.onCall = func(transportCall) {
		fetchingDuring = svc.IsFetching()
	}
	transport.respond("documents.info", &domain.Document{ID: "doc-1"})

	_, err := svc.Fetch(context.Background(), "doc-1", domain.FetchOptions{Prefetch: true})
	require.NoError(t, err)

	assert.False(t, fetchingDuring)
}

func TestDocumentsService_Prefetch_SkipsWhenCached(t *testing.T) {
	svc, transport, table, _ := newTestService(t)

	table.Add(&domain.Document{ID: "doc-1"})
	svc.Prefetch(context.Background(), "doc-1")

	assert.Equal(t, 0, transport.callCount("documents.info"))
}

func TestDocumentsService_Prefetch_SwallowsErrors(t *testing.T) {
	svc, transport, table, _ := newTestService(t)

	transport.fail("documents.info", errors.New("boom"))
	svc.Prefetch(context.Background(), "doc-1")

	assert.Equal(t, 1, transport.callCount("documents.info"))
	assert.Nil(t, table.Get("doc-1"))
}

func TestDocumentsService_Prefetch_ConcurrentCallsNotCoalesced(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	doc, _ := json.Marshal(&domain.Document{ID: "doc-1"})
	release := make(chan struct{})
	var inFlight int32
	transport.handle = func(transportCall) (*driven.Payload, error) {
		atomic.AddInt32(&inFlight, 1)
		<-release
		return &driven.Payload{OK: true, Status: 200, Data: doc}, nil
	}

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			svc.Prefetch(context.Background(), "doc-1")
		}()
	}

	// Both prefetches must have issued their own request before either
	// response lands
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&inFlight) == 2
	}, time.Second, 5*time.Millisecond)

	close(release)
	wg.Wait()

	assert.Equal(t, 2, transport.callCount("documents.info"))
}

func searchHits(docs ...*domain.Document) []domain.SearchResult {
	hits := make([]domain.SearchResult, 0, len(docs))
	for i, doc := range docs {
		hits = append(hits, domain.SearchResult{
			Ranking:  1.0 - float64(i)*0.1,
			Context:  "snippet for " + doc.ID,
			Document: doc,
		})
	}
	return hits
}

func TestDocumentsService_Search_MergesPageAndTable(t *testing.T) {
	svc, transport, table, _ := newTestService(t)
	ctx := context.Background()

	transport.respond("documents.search", searchHits(
		&domain.Document{ID: "doc-1", Title: "Hit One"},
		&domain.Document{ID: "doc-2", Title: "Hit Two"},
	))

	results, err := svc.Search(ctx, "report", domain.SearchOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Verify results alias the canonical table instances
	assert.Same(t, table.Get("doc-1"), results[0].Document)
	assert.Equal(t, "snippet for doc-1", results[0].Context)

	cached := svc.SearchResults("report")
	require.Len(t, cached, 2)
	assert.Same(t, table.Get("doc-1"), cached[0].Document)
}

func TestDocumentsService_Search_LiveReferences(t *testing.T) {
	svc, transport, table, _ := newTestService(t)
	ctx := context.Background()

	transport.respond("documents.search", searchHits(&domain.Document{ID: "doc-1", Title: "Before"}))

	_, err := svc.Search(ctx, "q", domain.SearchOptions{})
	require.NoError(t, err)

	// A later fetch patches the instance; the cached result must see it
	table.Add(&domain.Document{ID: "doc-1", Title: "After"})

	cached := svc.SearchResults("q")
	require.Len(t, cached, 1)
	assert.Equal(t, "After", cached[0].Document.Title)
}

func TestDocumentsService_Search_DropsUnresolvableResults(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	page := []domain.SearchResult{
		{Ranking: 0.9, Context: "kept", Document: &domain.Document{ID: "doc-1"}},
		{Ranking: 0.5, Context: "dropped", Document: nil},
	}
	transport.respond("documents.search", page)

	results, err := svc.Search(context.Background(), "q", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc-1", results[0].Document.ID)
}

func TestDocumentsService_Search_IdempotentRange(t *testing.T) {
	svc, transport, _, _ := newTestService(t)
	ctx := context.Background()

	docs := make([]*domain.Document, 10)
	for i := range docs {
		docs[i] = &domain.Document{ID: "doc-" + string(rune('a'+i))}
	}
	transport.respond("documents.search", searchHits(docs...))

	_, err := svc.Search(ctx, "q", domain.SearchOptions{Offset: 0, Limit: 10})
	require.NoError(t, err)
	_, err = svc.Search(ctx, "q", domain.SearchOptions{Offset: 0, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, svc.SearchResults("q"), 10)
}

func TestDocumentsService_Search_DisjointPages(t *testing.T) {
	svc, transport, _, _ := newTestService(t)
	ctx := context.Background()

	first := make([]*domain.Document, 10)
	for i := range first {
		first[i] = &domain.Document{ID: "first-" + string(rune('a'+i))}
	}
	transport.respond("documents.search", searchHits(first...))
	_, err := svc.Search(ctx, "q", domain.SearchOptions{Offset: 0, Limit: 10})
	require.NoError(t, err)

	second := make([]*domain.Document, 10)
	for i := range second {
		second[i] = &domain.Document{ID: "second-" + string(rune('a'+i))}
	}
	transport.respond("documents.search", searchHits(second...))
	_, err = svc.Search(ctx, "q", domain.SearchOptions{Offset: 10, Limit: 10})
	require.NoError(t, err)

	cached := svc.SearchResults("q")
	require.Len(t, cached, 20)
	assert.Equal(t, "first-a", cached[0].Document.ID)
	assert.Equal(t, "first-"+string(rune('a'+9)), cached[9].Document.ID)
	assert.Equal(t, "second-a", cached[10].Document.ID)
}

func TestDocumentsService_Search_TransportError(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	transport.fail("documents.search", errors.New("gateway timeout"))

	_, err := svc.Search(context.Background(), "q", domain.SearchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway timeout")
	assert.Empty(t, svc.SearchResults("q"))
}

func TestDocumentsService_Search_MissingData(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	transport.respondEmpty("documents.search")

	_, err := svc.Search(context.Background(), "q", domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrMissingData)
}

func TestDocumentsService_SearchResults_UnknownQuery(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	results := svc.SearchResults("never searched")
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestDocumentsService_Create_Success(t *testing.T) {
	svc, transport, table, _ := newTestService(t)

	transport.respond("documents.create", &domain.Document{ID: "doc-new", Title: "Fresh"})

	doc, err := svc.Create(context.Background(), driving.CreateDocumentParams{
		Title:        "Fresh",
		CollectionID: "col-1",
	})
	require.NoError(t, err)
	assert.Same(t, table.Get("doc-new"), doc)
}

func TestDocumentsService_Create_RequiresTitle(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), driving.CreateDocumentParams{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, transport.callCount("documents.create"))
}

func TestDocumentsService_Update_PatchesInPlaceAndNotifiesCollection(t *testing.T) {
	svc, transport, table, collections := newTestService(t)
	ctx := context.Background()

	held := table.Add(&domain.Document{
		ID:           "doc-1",
		Title:        "Old Title",
		CollectionID: strPtr("col-1"),
	})

	transport.respond("documents.update", &domain.Document{
		ID:           "doc-1",
		Title:        "New Title",
		URL:          "/doc/new-title-abc",
		CollectionID: strPtr("col-1"),
	})

	doc, err := svc.Update(ctx, driving.UpdateDocumentParams{ID: "doc-1", Title: "New Title"})
	require.NoError(t, err)

	assert.Same(t, held, doc)
	assert.Equal(t, "New Title", held.Title)

	// Verify the collection hook received the canonical instance
	require.Len(t, collections.updated, 1)
	assert.Same(t, held, collections.updated[0])
}

func TestDocumentsService_Update_RequiresID(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), driving.UpdateDocumentParams{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentsService_Move_RefreshesCollectionAndMerges(t *testing.T) {
	svc, transport, table, collections := newTestService(t)
	ctx := context.Background()

	doc := table.Add(&domain.Document{
		ID:           "doc-1",
		CollectionID: strPtr("col-1"),
	})

	transport.respond("documents.move", &domain.Document{
		ID:               "doc-1",
		CollectionID:     strPtr("col-1"),
		ParentDocumentID: strPtr("doc-parent"),
	})

	moved, err := svc.Move(ctx, doc, "doc-parent")
	require.NoError(t, err)

	assert.Same(t, doc, moved)
	require.NotNil(t, moved.ParentDocumentID)
	assert.Equal(t, "doc-parent", *moved.ParentDocumentID)
	assert.Equal(t, []string{"col-1"}, collections.refreshed)

	call, _ := transport.lastCall("documents.move")
	body := call.body.(map[string]string)
	assert.Equal(t, "doc-parent", body["parentDocumentId"])
}

func TestDocumentsService_Move_MissingData(t *testing.T) {
	svc, transport, table, _ := newTestService(t)

	doc := table.Add(&domain.Document{ID: "doc-1"})
	transport.respondEmpty("documents.move")

	_, err := svc.Move(context.Background(), doc, "")
	assert.ErrorIs(t, err, domain.ErrMissingData)
}

func TestDocumentsService_Duplicate_CopiesInPlace(t *testing.T) {
	svc, transport, table, collections := newTestService(t)
	ctx := context.Background()

	doc := table.Add(&domain.Document{
		ID:               "doc-1",
		Title:            "Quarterly Report",
		Text:             "# Body",
		CollectionID:     strPtr("col-1"),
		ParentDocumentID: strPtr("doc-parent"),
	})

	transport.respond("documents.create", &domain.Document{ID: "doc-2", Title: "Quarterly Report (duplicate)"})

	dup, err := svc.Duplicate(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, "doc-2", dup.ID)
	assert.Same(t, table.Get("doc-2"), dup)
	assert.Equal(t, []string{"col-1"}, collections.refreshed)

	call, _ := transport.lastCall("documents.create")
	params := call.body.(driving.CreateDocumentParams)
	assert.Equal(t, "Quarterly Report (duplicate)", params.Title)
	assert.Equal(t, "# Body", params.Text)
	assert.Equal(t, "col-1", params.CollectionID)
	assert.Equal(t, "doc-parent", params.ParentDocumentID)
	assert.True(t, params.Publish)
}

func TestDocumentsService_Delete_RemovesEverywhere(t *testing.T) {
	svc, transport, table, collections := newTestService(t)
	ctx := context.Background()

	doc := table.Add(&domain.Document{ID: "doc-1", CollectionID: strPtr("col-1")})
	svc.AddRecentlyViewed("doc-1")
	svc.SetActive("doc-1")

	err := svc.Delete(ctx, doc)
	require.NoError(t, err)

	assert.Nil(t, table.Get("doc-1"))
	assert.Empty(t, svc.RecentlyViewedIDs())
	assert.Nil(t, svc.Active())
	assert.Equal(t, []string{"col-1"}, collections.refreshed)
	assert.Equal(t, 1, transport.callCount("documents.delete"))
}

func TestDocumentsService_Delete_KeepsSearchCacheEntry(t *testing.T) {
	svc, transport, table, _ := newTestService(t)
	ctx := context.Background()

	transport.respond("documents.search", searchHits(&domain.Document{ID: "doc-1"}))
	_, err := svc.Search(ctx, "q", domain.SearchOptions{})
	require.NoError(t, err)

	doc := table.Get("doc-1")
	require.NotNil(t, doc)
	require.NoError(t, svc.Delete(ctx, doc))

	// The cached entry keeps its slot until the query re-runs
	assert.Len(t, svc.SearchResults("q"), 1)
}

func TestDocumentsService_Delete_TransportError(t *testing.T) {
	svc, transport, table, _ := newTestService(t)

	doc := table.Add(&domain.Document{ID: "doc-1"})
	svc.AddRecentlyViewed("doc-1")
	transport.fail("documents.delete", errors.New("forbidden"))

	err := svc.Delete(context.Background(), doc)
	require.Error(t, err)

	// Nothing local is touched when the server refuses
	assert.NotNil(t, table.Get("doc-1"))
	assert.Equal(t, []string{"doc-1"}, svc.RecentlyViewedIDs())
}

func TestDocumentsService_Restore_AppliesSnapshotInPlace(t *testing.T) {
	svc, transport, table, _ := newTestService(t)
	ctx := context.Background()

	held := table.Add(&domain.Document{ID: "doc-1", Title: "Current", Text: "current body"})

	transport.respond("documents.restore", &domain.Document{
		ID:    "doc-1",
		Title: "Restored",
		Text:  "restored body",
	})

	doc, err := svc.Restore(ctx, held, "rev-7")
	require.NoError(t, err)

	assert.Same(t, held, doc)
	assert.Equal(t, "Restored", held.Title)
	assert.Equal(t, "restored body", held.Text)

	call, _ := transport.lastCall("documents.restore")
	body := call.body.(map[string]string)
	assert.Equal(t, "rev-7", body["revisionId"])
}

func TestDocumentsService_PinStar_NoLocalFlip(t *testing.T) {
	svc, transport, table, _ := newTestService(t)
	ctx := context.Background()

	doc := table.Add(&domain.Document{ID: "doc-1"})

	require.NoError(t, svc.Pin(ctx, "doc-1"))
	require.NoError(t, svc.Star(ctx, "doc-1"))

	// The request went out but local flags are the caller's job
	assert.Equal(t, 1, transport.callCount("documents.pin"))
	assert.Equal(t, 1, transport.callCount("documents.star"))
	assert.False(t, doc.Pinned)
	assert.False(t, doc.Starred)

	require.NoError(t, svc.Unpin(ctx, "doc-1"))
	require.NoError(t, svc.Unstar(ctx, "doc-1"))
	assert.Equal(t, 1, transport.callCount("documents.unpin"))
	assert.Equal(t, 1, transport.callCount("documents.unstar"))
}

func TestDocumentsService_Pin_TransportError(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	transport.fail("documents.pin", errors.New("boom"))
	err := svc.Pin(context.Background(), "doc-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "documents.pin")
}

func TestDocumentsService_Export(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	transport.respond("documents.export", "# Quarterly Report\n\nBody.")

	markdown, err := svc.Export(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Contains(t, markdown, "# Quarterly Report")
}

func TestDocumentsService_Export_MissingData(t *testing.T) {
	svc, transport, _, _ := newTestService(t)

	transport.respondEmpty("documents.export")

	_, err := svc.Export(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrMissingData)
}

func TestDocumentsService_ActiveSelection(t *testing.T) {
	svc, _, table, _ := newTestService(t)

	doc := table.Add(&domain.Document{ID: "doc-1"})

	assert.Nil(t, svc.Active())

	svc.SetActive("doc-1")
	assert.Same(t, doc, svc.Active())

	svc.ClearActive()
	assert.Nil(t, svc.Active())
}

func TestDocumentsService_AddRecentlyViewed_Dedupes(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	svc.AddRecentlyViewed("doc-1")
	svc.AddRecentlyViewed("doc-2")
	svc.AddRecentlyViewed("doc-1")

	assert.Equal(t, []string{"doc-1", "doc-2"}, svc.RecentlyViewedIDs())
}

func TestDocumentsService_NilCollections_HooksSkipped(t *testing.T) {
	transport := newMockTransport()
	table := memory.NewDocumentTable()
	svc := NewDocumentsService(transport, table, nil)
	ctx := context.Background()

	doc := table.Add(&domain.Document{ID: "doc-1", CollectionID: strPtr("col-1")})
	transport.respond("documents.update", &domain.Document{ID: "doc-1", Title: "New"})

	// Must not panic without a collections service
	_, err := svc.Update(ctx, driving.UpdateDocumentParams{ID: "doc-1", Title: "New"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, doc))
}
