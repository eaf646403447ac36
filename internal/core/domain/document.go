package domain

import (
	"strings"
	"time"
)

// Document represents a knowledge-base document.
// The struct doubles as the wire payload for the documents.* endpoints,
// so field tags follow the server's JSON naming.
//
// Exactly one instance exists per ID in the document table at any time.
// Updates patch that instance in place via ApplyPayload, so every live
// reference (views, search results) observes the change.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// URLID is the stable human-readable alias used in document URLs.
	// Unique at any instant, but not guaranteed unique across time.
	URLID string `json:"urlId"`

	// Title is the document title.
	Title string `json:"title"`

	// Text is the full markdown body.
	Text string `json:"text"`

	// CollectionID links to the owning Collection.
	// Nil only transiently, while a document is being moved or created.
	CollectionID *string `json:"collectionId"`

	// ParentDocumentID links to a parent document for nested documents.
	ParentDocumentID *string `json:"parentDocumentId"`

	// CreatedBy is the user who created the document.
	CreatedBy User `json:"createdBy"`

	// Pinned reports whether the document is pinned in its collection.
	Pinned bool `json:"pinned"`

	// Starred reports whether the current user starred the document.
	Starred bool `json:"starred"`

	// Revision is the server-side revision counter, incremented on
	// every persisted edit.
	Revision int `json:"revision"`

	// URL is the server-relative path to the document ("/doc/<urlId>").
	URL string `json:"url"`

	// CreatedAt is when the document was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the document was last modified.
	UpdatedAt time.Time `json:"updatedAt"`

	// PublishedAt is when the document was published.
	// Nil means the document is a draft.
	PublishedAt *time.Time `json:"publishedAt"`
}

// User identifies the author of a document or revision.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`

	// Name is the user's display name.
	Name string `json:"name"`
}

// ApplyPayload overwrites the document's fields from a payload while
// preserving the receiver's identity. Callers hand it a freshly decoded
// wire payload; the receiver keeps its pointer so shared references
// stay valid.
func (d *Document) ApplyPayload(payload *Document) {
	id := d.ID
	*d = *payload
	if d.ID == "" {
		d.ID = id
	}
}

// IsDraft reports whether the document has never been published.
func (d *Document) IsDraft() bool {
	return d.PublishedAt == nil
}

// IsPublishedIn reports whether the document is published and belongs
// to the given collection.
func (d *Document) IsPublishedIn(collectionID string) bool {
	return d.PublishedAt != nil && d.InCollection(collectionID)
}

// InCollection reports whether the document belongs to the given collection.
func (d *Document) InCollection(collectionID string) bool {
	return d.CollectionID != nil && *d.CollectionID == collectionID
}

// MatchesURLID reports whether a requested identifier resolves to this
// document by URL alias: the identifier must end with the document's
// urlId, so both "my-title-a1b2c3" and the bare "a1b2c3" match.
func (d *Document) MatchesURLID(id string) bool {
	return d.URLID != "" && strings.HasSuffix(id, d.URLID)
}
