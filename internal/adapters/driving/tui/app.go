package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/views/doccontent"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/views/documents"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/views/search"
)

// App is the root application model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	browseView *documents.View
	searchView *search.View
	readerView *doccontent.View

	currentView messages.ViewType
	lastView    messages.ViewType
	baseURL     string
	width       int
	height      int
	ready       bool
}

// NewApp creates the application model from its driving ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	baseURL := ""
	if ports.Config != nil {
		baseURL = strings.TrimRight(ports.Config.GetString("api.url"), "/")
	}

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		browseView:  documents.NewView(s, km, ports.Documents, ports.Collections),
		searchView:  search.NewView(s, km, ports.Documents),
		readerView:  doccontent.NewView(s, ports.Documents),
		currentView: messages.ViewBrowse,
		lastView:    messages.ViewBrowse,
		baseURL:     baseURL,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.browseView = a.browseView.WithContext(ctx)
	a.searchView = a.searchView.WithContext(ctx)
	return a
}

// Init starts the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("folio"),
		a.browseView.Init(),
	)
}

// Update handles messages and routes them to views.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.browseView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.readerView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			return a.handleHelpKey(msg)
		}
		return a.routeToCurrentView(msg)

	case messages.ViewChanged:
		return a.switchView(msg.View)

	case messages.DocumentOpened:
		return a.openDocument(msg)

	case messages.DocumentsLoaded, messages.CollectionsLoaded:
		var cmd tea.Cmd
		a.browseView, cmd = a.browseView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		var cmd tea.Cmd
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.DocumentLoaded:
		var cmd tea.Cmd
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd

	case messages.YankRequested:
		return a, a.yankURL(msg)

	case messages.URLCopied:
		return a.routeToCurrentView(msg)

	case messages.ErrorOccurred:
		return a.routeToCurrentView(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a.routeToCurrentView(msg)
}

// routeToCurrentView forwards a message to the active view only.
func (a *App) routeToCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewReader:
		a.readerView, cmd = a.readerView.Update(msg)
	}

	return a, cmd
}

// switchView changes the active view, remembering where the reader was
// entered from so esc returns there.
func (a *App) switchView(view messages.ViewType) (tea.Model, tea.Cmd) {
	if view == a.currentView {
		return a, nil
	}

	fromReader := a.currentView == messages.ViewReader

	// Escaping the reader goes back to where the document was opened.
	if fromReader && view == messages.ViewBrowse {
		view = a.lastView
		a.ports.Documents.ClearActive()
	}

	if view == messages.ViewReader || view == messages.ViewHelp {
		if a.currentView != messages.ViewReader && a.currentView != messages.ViewHelp {
			a.lastView = a.currentView
		}
	}
	a.currentView = view

	// A fresh visit to search starts clean; coming back from the reader
	// keeps the query and results.
	if view == messages.ViewSearch && !fromReader {
		a.searchView.Reset()
	}

	// The reader fetches into the shared cache, so the listing the
	// browser shows may be stale by the time we come back.
	if view == messages.ViewBrowse && fromReader {
		return a, a.browseView.RefreshIfStale()
	}
	return a, nil
}

// openDocument switches to the reader and records the view.
func (a *App) openDocument(msg messages.DocumentOpened) (tea.Model, tea.Cmd) {
	if msg.Document == nil {
		return a, nil
	}

	if a.currentView != messages.ViewReader {
		a.lastView = a.currentView
	}
	a.currentView = messages.ViewReader

	a.ports.Documents.SetActive(msg.Document.ID)
	a.ports.Documents.AddRecentlyViewed(msg.Document.ID)

	return a, a.readerView.SetDocument(msg.Document)
}

// yankURL copies the document's full URL to the clipboard and reports
// the outcome back to the active view.
func (a *App) yankURL(msg messages.YankRequested) tea.Cmd {
	if msg.Document == nil {
		return nil
	}
	url := a.baseURL + msg.Document.URL
	return func() tea.Msg {
		err := clipboard.WriteAll(url)
		return messages.URLCopied{URL: url, Err: err}
	}
}

// handleHelpKey dismisses the help screen on any key.
func (a *App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keymap.Matches(msg.String(), a.keymap.Quit) {
		return a, tea.Quit
	}
	a.currentView = a.lastView
	return a, nil
}

// View renders the active view.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewReader:
		return a.readerView.View()
	case messages.ViewHelp:
		return a.helpView()
	default:
		return a.browseView.View()
	}
}

// helpView renders the keybinding reference.
func (a *App) helpView() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Keybindings"))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"↑/k ↓/j", "move"},
		{"tab / shift+tab", "switch listing tab"},
		{"enter", "open document"},
		{"/", "search"},
		{"y", "copy document URL"},
		{"r", "refresh"},
		{"esc", "back"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(a.styles.Subtitle.Render(row[0]))
		b.WriteString(strings.Repeat(" ", 20-len([]rune(row[0]))))
		b.WriteString(a.styles.Normal.Render(row[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("Press any key to return"))
	return b.String()
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// BrowseView returns the document browser model.
func (a *App) BrowseView() *documents.View {
	return a.browseView
}

// SearchView returns the search model.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// ReaderView returns the reader model.
func (a *App) ReaderView() *doccontent.View {
	return a.readerView
}

// SetDimensions sets the dimensions on the app and all views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.browseView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.readerView.SetDimensions(width, height)
}
