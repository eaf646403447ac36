package domain

import "time"

// Collection represents a grouping of documents.
// Besides its own metadata, a collection caches a navigation tree of
// document titles and URLs for listing, which must be kept consistent
// when documents change.
type Collection struct {
	// ID is the unique identifier for the collection.
	ID string `json:"id"`

	// Name is the collection's display name.
	Name string `json:"name"`

	// Description is an optional free-text description.
	Description string `json:"description"`

	// Color is the display colour as a hex string.
	Color string `json:"color"`

	// Documents is the cached navigation tree of published documents.
	Documents []*NavigationNode `json:"documents"`

	// CreatedAt is when the collection was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the collection was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NavigationNode is one entry in a collection's cached document tree.
// It carries only what listings need: the id, title and URL.
type NavigationNode struct {
	// ID is the document id this node refers to.
	ID string `json:"id"`

	// Title is the cached document title.
	Title string `json:"title"`

	// URL is the cached server-relative document path.
	URL string `json:"url"`

	// Children are nested documents, in listing order.
	Children []*NavigationNode `json:"children"`
}

// ApplyPayload overwrites the collection's fields from a payload while
// preserving the receiver's identity, mirroring Document.ApplyPayload.
func (c *Collection) ApplyPayload(payload *Collection) {
	id := c.ID
	*c = *payload
	if c.ID == "" {
		c.ID = id
	}
}

// UpdateDocument patches the cached title and URL for the given document
// throughout the navigation tree. Returns true if any node changed.
func (c *Collection) UpdateDocument(doc *Document) bool {
	return updateNodes(c.Documents, doc)
}

func updateNodes(nodes []*NavigationNode, doc *Document) bool {
	changed := false
	for _, node := range nodes {
		if node.ID == doc.ID {
			node.Title = doc.Title
			node.URL = doc.URL
			changed = true
		}
		if updateNodes(node.Children, doc) {
			changed = true
		}
	}
	return changed
}
