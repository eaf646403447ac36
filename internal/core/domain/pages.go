package domain

// NamedPage identifies one of the server's named document listings.
// Each maps to a documents.<name> endpoint.
type NamedPage string

const (
	// PageList is the general paginated listing.
	PageList NamedPage = "list"

	// PageViewed lists documents in recently-viewed order.
	PageViewed NamedPage = "viewed"

	// PageStarred lists documents starred by the current user.
	PageStarred NamedPage = "starred"

	// PageDrafts lists the current user's unpublished documents.
	PageDrafts NamedPage = "drafts"

	// PagePinned lists documents pinned in a collection.
	PagePinned NamedPage = "pinned"
)

// Endpoint returns the RPC path for the named page.
func (p NamedPage) Endpoint() string {
	return "documents." + string(p)
}

// Valid reports whether the page names a known listing.
func (p NamedPage) Valid() bool {
	switch p {
	case PageList, PageViewed, PageStarred, PageDrafts, PagePinned:
		return true
	default:
		return false
	}
}

// Direction orders a listing ascending or descending.
type Direction string

const (
	// DirectionAsc sorts ascending.
	DirectionAsc Direction = "ASC"

	// DirectionDesc sorts descending.
	DirectionDesc Direction = "DESC"
)

// Sort field names accepted by the listing endpoints.
const (
	SortTitle       = "title"
	SortCreatedAt   = "createdAt"
	SortUpdatedAt   = "updatedAt"
	SortPublishedAt = "publishedAt"
)

// ListOptions carries pagination, sort and filter parameters for the
// named listing endpoints. Zero values are omitted from the request so
// the server applies its own defaults.
type ListOptions struct {
	// Offset is the number of results to skip.
	Offset int `json:"offset,omitempty"`

	// Limit is the maximum number of results per page.
	Limit int `json:"limit,omitempty"`

	// Sort is the field to order by (see the Sort* constants).
	Sort string `json:"sort,omitempty"`

	// Direction is the sort direction.
	Direction Direction `json:"direction,omitempty"`

	// CollectionID filters to a single collection.
	CollectionID string `json:"collectionId,omitempty"`

	// UserID filters to documents created by a user.
	UserID string `json:"userId,omitempty"`
}

// FetchOptions configures a single-document fetch.
type FetchOptions struct {
	// Prefetch marks the request as speculative: the table's global
	// fetching flag is left untouched.
	Prefetch bool

	// ShareID scopes the request to a share link's access token.
	ShareID string
}

// Pagination echoes the offset/limit window of a listing response.
type Pagination struct {
	// Offset is the window start position.
	Offset int `json:"offset"`

	// Limit is the window size.
	Limit int `json:"limit"`

	// NextPath is the endpoint path for the following page, if any.
	NextPath string `json:"nextPath,omitempty"`
}
