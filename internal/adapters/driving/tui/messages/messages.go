// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/foliohq/folio-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBrowse is the tabbed document listing view.
	ViewBrowse ViewType = iota
	// ViewSearch is the live search input and results view.
	ViewSearch
	// ViewReader shows a single document's text.
	ViewReader
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBrowse:
		return "browse"
	case ViewSearch:
		return "search"
	case ViewReader:
		return "reader"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DocumentsLoaded carries one listing tab's documents back to the
// browse view. Tab identifies which tab requested the load, so stale
// responses from an abandoned tab are dropped.
type DocumentsLoaded struct {
	Tab       int
	Documents []*domain.Document
	Err       error
}

// CollectionsLoaded carries the workspace's collections for the
// browse view's collection tabs.
type CollectionsLoaded struct {
	Collections []*domain.Collection
	Err         error
}

// DocumentOpened signals a document was chosen for reading.
type DocumentOpened struct {
	Document *domain.Document
}

// DocumentLoaded carries a freshly fetched document to the reader.
type DocumentLoaded struct {
	Document *domain.Document
	Err      error
}

// SearchCompleted carries search results back to the search view.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// YankRequested asks the app to copy a document's URL to the clipboard.
type YankRequested struct {
	Document *domain.Document
}

// URLCopied reports the outcome of a yank.
type URLCopied struct {
	URL string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
