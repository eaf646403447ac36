package domain

// SearchOptions configures a full-text search query. Offset and Limit
// also address the window of the per-query result cache the returned
// page is merged into.
type SearchOptions struct {
	// Offset is the absolute position of the page's first result.
	Offset int

	// Limit is the maximum number of results per page.
	Limit int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Ranking is the server-assigned relevance score.
	Ranking float64 `json:"ranking"`

	// Context is a snippet of the document surrounding the match.
	Context string `json:"context"`

	// Document is the matched document.
	Document *Document `json:"document"`
}
