package domain

import "time"

// Revision is a point-in-time snapshot of a document.
// Revisions are created server-side; the client only ever uses them as
// input to a restore operation.
type Revision struct {
	// ID is the unique identifier for the revision.
	ID string `json:"id"`

	// DocumentID links to the document this revision belongs to.
	DocumentID string `json:"documentId"`

	// Title is the document title at the time of the snapshot.
	Title string `json:"title"`

	// Text is the document body at the time of the snapshot.
	Text string `json:"text"`

	// CreatedBy is the user whose edit produced the revision.
	CreatedBy User `json:"createdBy"`

	// CreatedAt is when the revision was created.
	CreatedAt time.Time `json:"createdAt"`
}
