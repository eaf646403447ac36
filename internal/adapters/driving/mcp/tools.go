package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_documents tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"the search query to find documents"`
	Offset int    `json:"offset,omitempty" jsonschema:"absolute position of the first result (default 0)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_documents tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Ranking    float64 `json:"ranking"`
	Context    string  `json:"context,omitempty"`
}

// ReadInput is the input schema for the read_document tool.
type ReadInput struct {
	ID string `json:"id" jsonschema:"the document id or url id to read"`
}

// ReadOutput is the output schema for the read_document tool.
type ReadOutput struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	CollectionID string `json:"collection_id,omitempty"`
	Text         string `json:"text"`
}

// RecentInput is the input schema for the list_recent tool.
type RecentInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 10)"`
}

// RecentOutput is the output schema for the list_recent tool.
type RecentOutput struct {
	Documents []DocumentInfo `json:"documents"`
	Count     int            `json:"count"`
}

// DocumentInfo is a compact document listing entry.
type DocumentInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	UpdatedAt string `json:"updated_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Full-text search across the workspace's documents",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_document",
		Description: "Read a document's full markdown text by id",
	}, s.handleRead)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_recent",
		Description: "List recently viewed documents",
	}, s.handleRecent)
}

// handleSearch handles the search_documents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{Offset: input.Offset, Limit: limit}
	results, err := s.ports.Documents.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].Document.ID,
			Title:      results[i].Document.Title,
			URL:        results[i].Document.URL,
			Ranking:    results[i].Ranking,
			Context:    results[i].Context,
		}
	}

	return nil, output, nil
}

// handleRead handles the read_document tool invocation. A read counts
// as a view, so the id is recorded on the recently-viewed list.
func (s *Server) handleRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadInput,
) (*mcp.CallToolResult, ReadOutput, error) {
	doc, err := s.ports.Documents.Fetch(ctx, input.ID, domain.FetchOptions{})
	if err != nil {
		return nil, ReadOutput{}, err
	}

	s.ports.Documents.AddRecentlyViewed(doc.ID)

	output := ReadOutput{
		ID:    doc.ID,
		Title: doc.Title,
		URL:   doc.URL,
		Text:  doc.Text,
	}
	if doc.CollectionID != nil {
		output.CollectionID = *doc.CollectionID
	}

	return nil, output, nil
}

// handleRecent handles the list_recent tool invocation.
func (s *Server) handleRecent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecentInput,
) (*mcp.CallToolResult, RecentOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	if _, err := s.ports.Documents.FetchRecentlyViewed(ctx, domain.ListOptions{Limit: limit}); err != nil {
		return nil, RecentOutput{}, err
	}

	docs := s.ports.Documents.RecentlyViewed()
	if len(docs) > limit {
		docs = docs[:limit]
	}

	output := RecentOutput{
		Documents: make([]DocumentInfo, len(docs)),
		Count:     len(docs),
	}
	for i, doc := range docs {
		output.Documents[i] = DocumentInfo{
			ID:        doc.ID,
			Title:     doc.Title,
			URL:       doc.URL,
			UpdatedAt: doc.UpdatedAt.Format("2006-01-02 15:04"),
		}
	}

	return nil, output, nil
}
