// Package documents provides the tabbed document browser view for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driving"
)

// Tab is one listing tab. Fixed tabs map to named pages; collection
// tabs carry the collection id and list its published documents.
type Tab struct {
	Title        string
	Page         domain.NamedPage
	CollectionID string
}

// View is the tabbed document browser.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	documents   driving.DocumentsService
	collections driving.CollectionsService
	ctx         context.Context

	tabs         []Tab
	activeTab    int
	docs         []*domain.Document
	docsVersion  uint64
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	err          error
}

// fixedTabs are the named-page tabs every workspace gets.
func fixedTabs() []Tab {
	return []Tab{
		{Title: "Recent", Page: domain.PageList},
		{Title: "Viewed", Page: domain.PageViewed},
		{Title: "Starred", Page: domain.PageStarred},
		{Title: "Drafts", Page: domain.PageDrafts},
	}
}

// NewView creates a new document browser view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	documents driving.DocumentsService,
	collections driving.CollectionsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:      s,
		keymap:      km,
		documents:   documents,
		collections: collections,
		ctx:         context.Background(),
		tabs:        fixedTabs(),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the first tab and the collection list.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.loadActiveTab(), v.loadCollections())
}

// loadActiveTab returns a command that fetches the active tab's
// listing and resolves it through the corresponding derived view.
func (v *View) loadActiveTab() tea.Cmd {
	tab := v.tabs[v.activeTab]
	index := v.activeTab
	v.loading = true
	return func() tea.Msg {
		docs, err := v.fetchTab(tab)
		return messages.DocumentsLoaded{Tab: index, Documents: docs, Err: err}
	}
}

// fetchTab fetches one tab's named page and reads the listing back
// from the document table, so in-place merges are reflected.
func (v *View) fetchTab(tab Tab) ([]*domain.Document, error) {
	switch {
	case tab.CollectionID != "":
		opts := domain.ListOptions{CollectionID: tab.CollectionID}
		if _, err := v.documents.FetchPage(v.ctx, domain.PageList, opts); err != nil {
			return nil, err
		}
		return v.documents.RecentlyUpdatedInCollection(tab.CollectionID), nil

	case tab.Page == domain.PageViewed:
		if _, err := v.documents.FetchRecentlyViewed(v.ctx, domain.ListOptions{}); err != nil {
			return nil, err
		}
		return v.documents.RecentlyViewed(), nil

	case tab.Page == domain.PageStarred:
		if _, err := v.documents.FetchStarred(v.ctx, domain.ListOptions{}); err != nil {
			return nil, err
		}
		return v.documents.Starred(), nil

	case tab.Page == domain.PageDrafts:
		if _, err := v.documents.FetchDrafts(v.ctx, domain.ListOptions{}); err != nil {
			return nil, err
		}
		return v.documents.Drafts(), nil

	default:
		opts := domain.ListOptions{Sort: domain.SortUpdatedAt, Direction: domain.DirectionDesc}
		if _, err := v.documents.FetchPage(v.ctx, domain.PageList, opts); err != nil {
			return nil, err
		}
		return v.documents.RecentlyUpdated(), nil
	}
}

// loadCollections returns a command that lists the workspace's
// collections for the collection tabs.
func (v *View) loadCollections() tea.Cmd {
	if v.collections == nil {
		return nil
	}
	return func() tea.Msg {
		cols, err := v.collections.FetchAll(v.ctx)
		return messages.CollectionsLoaded{Collections: cols, Err: err}
	}
}

// RefreshIfStale reloads the active tab when the document cache has
// been mutated since the tab was last loaded. Reading a document
// bumps the cache, so coming back from the reader picks up in-place
// merges without waiting for a manual refresh.
func (v *View) RefreshIfStale() tea.Cmd {
	if v.loading || v.documents.CacheVersion() == v.docsVersion {
		return nil
	}
	return v.loadActiveTab()
}

// Update handles messages for the browser view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		// A tab switch may have outrun this response.
		if msg.Tab != v.activeTab {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.docs = msg.Documents
		v.docsVersion = v.documents.CacheVersion()
		if v.selected >= len(v.docs) {
			v.selected = 0
			v.scrollOffset = 0
		}
		return v, nil

	case messages.CollectionsLoaded:
		if msg.Err != nil {
			// Collection tabs are a nicety; the fixed tabs still work.
			return v, nil
		}
		v.setCollectionTabs(msg.Collections)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// setCollectionTabs rebuilds the tab row as the fixed tabs plus one
// tab per collection, keeping the active tab if it survives.
func (v *View) setCollectionTabs(cols []*domain.Collection) {
	active := v.tabs[v.activeTab]
	tabs := fixedTabs()
	for _, col := range cols {
		tabs = append(tabs, Tab{Title: col.Name, CollectionID: col.ID})
	}
	v.tabs = tabs

	v.activeTab = 0
	for i, tab := range v.tabs {
		if tab.Title == active.Title && tab.CollectionID == active.CollectionID {
			v.activeTab = i
			break
		}
	}
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}

	case keymap.Matches(key, v.keymap.Down):
		if v.selected < len(v.docs)-1 {
			v.selected++
			v.adjustScroll()
		}

	case keymap.Matches(key, v.keymap.NextTab):
		v.activeTab = (v.activeTab + 1) % len(v.tabs)
		v.selected = 0
		v.scrollOffset = 0
		return v, v.loadActiveTab()

	case keymap.Matches(key, v.keymap.PrevTab):
		v.activeTab = (v.activeTab - 1 + len(v.tabs)) % len(v.tabs)
		v.selected = 0
		v.scrollOffset = 0
		return v, v.loadActiveTab()

	case keymap.Matches(key, v.keymap.Select):
		if doc := v.SelectedDocument(); doc != nil {
			return v, func() tea.Msg {
				return messages.DocumentOpened{Document: doc}
			}
		}

	case keymap.Matches(key, v.keymap.Search):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}

	case keymap.Matches(key, v.keymap.Yank):
		if doc := v.SelectedDocument(); doc != nil {
			return v, func() tea.Msg {
				return messages.YankRequested{Document: doc}
			}
		}

	case keymap.Matches(key, v.keymap.Refresh):
		return v, v.loadActiveTab()

	case keymap.Matches(key, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}

	case keymap.Matches(key, v.keymap.Quit):
		return v, tea.Quit
	}

	return v, nil
}

// adjustScroll keeps the selected row inside the visible window.
func (v *View) adjustScroll() {
	visible := v.visibleRows()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	}
	if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleRows returns how many document rows fit on screen.
func (v *View) visibleRows() int {
	// Title, tab row, separator, footer and padding.
	rows := v.height - 7
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the browser.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("folio"))
	b.WriteString("\n\n")
	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.docs) == 0:
		b.WriteString(v.styles.Muted.Render("No documents"))
	default:
		b.WriteString(v.renderDocs())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(
		"[tab] switch  [enter] open  [/] search  [y] copy url  [r] refresh  [?] help  [q] quit"))
	return b.String()
}

// renderTabs renders the tab row.
func (v *View) renderTabs() string {
	rendered := make([]string, 0, len(v.tabs))
	for i, tab := range v.tabs {
		if i == v.activeTab {
			rendered = append(rendered, v.styles.TabActive.Render(tab.Title))
		} else {
			rendered = append(rendered, v.styles.Tab.Render(tab.Title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderDocs renders the visible document rows.
func (v *View) renderDocs() string {
	visible := v.visibleRows()
	end := v.scrollOffset + visible
	if end > len(v.docs) {
		end = len(v.docs)
	}

	lines := make([]string, 0, visible)
	for i := v.scrollOffset; i < end; i++ {
		lines = append(lines, v.renderDoc(i, v.docs[i]))
	}
	return strings.Join(lines, "\n")
}

// renderDoc formats one document row: marker, title, updated date.
func (v *View) renderDoc(index int, doc *domain.Document) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	marker := "  "
	if doc.Starred {
		marker = "* "
	}

	title := doc.Title
	if title == "" {
		title = "(Untitled)"
	}
	maxTitleLen := v.width - 26
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	line := fmt.Sprintf("%s%s%-*s", indicator, marker, maxTitleLen, title)
	date := doc.UpdatedAt.Format("2006-01-02")

	if index == v.selected {
		row := v.styles.Selected.Render(line + "  " + date)
		if doc.PublishedAt == nil {
			row += " " + v.styles.Draft.Render("draft")
		}
		return row
	}

	row := v.styles.Normal.Render(line) + "  " + v.styles.Muted.Render(date)
	if doc.PublishedAt == nil {
		row += " " + v.styles.Draft.Render("draft")
	}
	return row
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Tabs returns the current tab row.
func (v *View) Tabs() []Tab {
	return v.tabs
}

// ActiveTab returns the index of the active tab.
func (v *View) ActiveTab() int {
	return v.activeTab
}

// Documents returns the documents in the active tab.
func (v *View) Documents() []*domain.Document {
	return v.docs
}

// Selected returns the index of the highlighted document.
func (v *View) Selected() int {
	return v.selected
}

// SelectedDocument returns the highlighted document, or nil.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < 0 || v.selected >= len(v.docs) {
		return nil
	}
	return v.docs[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view has received dimensions.
func (v *View) Ready() bool {
	return v.ready
}
