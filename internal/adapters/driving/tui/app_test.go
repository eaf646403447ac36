package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/messages"
)

func TestNewApp(t *testing.T) {
	t.Run("requires documents service", func(t *testing.T) {
		app, err := NewApp(&Ports{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingDocumentsService)
		assert.Nil(t, app)
	})

	t.Run("starts on the browse view", func(t *testing.T) {
		app, _ := newTestApp()
		assert.Equal(t, messages.ViewBrowse, app.CurrentView())
	})

	t.Run("collections and config are optional", func(t *testing.T) {
		base, _ := newTestApp()
		app, err := NewApp(&Ports{Documents: base.ports.Documents})
		require.NoError(t, err)
		assert.NotNil(t, app)
	})
}

func TestAppWindowSize(t *testing.T) {
	app, _ := newTestApp()

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated := model.(*App)

	assert.True(t, updated.ready)
	assert.Equal(t, 100, updated.width)
	assert.Equal(t, 40, updated.height)
	assert.True(t, updated.BrowseView().Ready())
	assert.True(t, updated.SearchView().Ready())
	assert.True(t, updated.ReaderView().Ready())
}

func TestAppViewSwitching(t *testing.T) {
	t.Run("slash opens search from browse", func(t *testing.T) {
		app, _ := newTestApp()
		app.SetDimensions(100, 40)

		model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
		require.NotNil(t, cmd)

		model, _ = model.(*App).Update(cmd())
		assert.Equal(t, messages.ViewSearch, model.(*App).CurrentView())
	})

	t.Run("question mark toggles help", func(t *testing.T) {
		app, _ := newTestApp()
		app.SetDimensions(100, 40)

		model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
		require.NotNil(t, cmd)
		model, _ = model.(*App).Update(cmd())
		assert.Equal(t, messages.ViewHelp, model.(*App).CurrentView())

		// Any key dismisses help and returns to the previous view.
		model, _ = model.(*App).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		assert.Equal(t, messages.ViewBrowse, model.(*App).CurrentView())
	})

	t.Run("ctrl+c quits from any view", func(t *testing.T) {
		app, _ := newTestApp()
		app.SetDimensions(100, 40)

		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestAppOpenDocument(t *testing.T) {
	app, transport := newTestApp()
	app.SetDimensions(100, 40)
	doc := fixtureDoc("doc-1", "Release Checklist")

	model, cmd := app.Update(messages.DocumentOpened{Document: doc})
	updated := model.(*App)

	assert.Equal(t, messages.ViewReader, updated.CurrentView())
	assert.Equal(t, []string{"doc-1"}, updated.ports.Documents.RecentlyViewedIDs())

	// The reader load command fetches the document into the table.
	require.NotNil(t, cmd)
	loaded, ok := cmd().(messages.DocumentLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.True(t, transport.called("documents.info"))

	// With the entity cached, the recorded selection resolves.
	active := updated.ports.Documents.Active()
	require.NotNil(t, active)
	assert.Equal(t, "doc-1", active.ID)

	model, _ = updated.Update(loaded)
	reader := model.(*App).ReaderView()
	require.NotNil(t, reader.Document())
	assert.Equal(t, "doc-1", reader.Document().ID)
}

func TestAppReaderBack(t *testing.T) {
	app, _ := newTestApp()
	app.SetDimensions(100, 40)
	doc := fixtureDoc("doc-1", "Release Checklist")

	model, _ := app.Update(messages.DocumentOpened{Document: doc})
	require.Equal(t, messages.ViewReader, model.(*App).CurrentView())

	// Esc in the reader goes back and clears the active document.
	model, cmd := model.(*App).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	model, _ = model.(*App).Update(cmd())

	updated := model.(*App)
	assert.Equal(t, messages.ViewBrowse, updated.CurrentView())
	assert.Nil(t, updated.ports.Documents.Active())
}

func TestAppReaderBackRefreshesStaleBrowse(t *testing.T) {
	app, transport := newTestApp()
	app.SetDimensions(100, 40)

	// Load the browse tab so the view records the cache version.
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	model, _ = model.(*App).Update(cmd())

	// Open a document the listing has not cached; the reader fetch
	// merges it into the table behind the browse view's back.
	doc := fixtureDoc("doc-9", "Incident Review")
	transport.respond("documents.info", doc)
	model, cmd = model.(*App).Update(messages.DocumentOpened{Document: doc})
	require.NotNil(t, cmd)
	model, _ = model.(*App).Update(cmd())

	// Escaping back reloads the now-stale listing.
	model, cmd = model.(*App).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	model, cmd = model.(*App).Update(cmd())
	require.Equal(t, messages.ViewBrowse, model.(*App).CurrentView())
	require.NotNil(t, cmd)

	loaded, ok := cmd().(messages.DocumentsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)

	// A second round trip with no new merges does not reload.
	model, _ = model.(*App).Update(loaded)
	model, cmd = model.(*App).Update(messages.DocumentOpened{Document: doc})
	require.NotNil(t, cmd)
	model, _ = model.(*App).Update(cmd())
	model, cmd = model.(*App).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, cmd = model.(*App).Update(cmd())
	assert.Nil(t, cmd)
}

func TestAppReaderBackToSearch(t *testing.T) {
	app, _ := newTestApp()
	app.SetDimensions(100, 40)

	// Enter search and land some results.
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewSearch})
	search := model.(*App).SearchView()
	search.SetQuery("release")
	model, _ = model.(*App).Update(messages.SearchCompleted{
		Query:   "release",
		Results: search.Results(),
	})

	doc := fixtureDoc("doc-1", "Release Checklist")
	model, _ = model.(*App).Update(messages.DocumentOpened{Document: doc})
	require.Equal(t, messages.ViewReader, model.(*App).CurrentView())

	// Esc returns to search with the query intact.
	model, _ = model.(*App).Update(messages.ViewChanged{View: messages.ViewBrowse})
	updated := model.(*App)
	assert.Equal(t, messages.ViewSearch, updated.CurrentView())
	assert.Equal(t, "release", updated.SearchView().Query())
}

func TestAppYank(t *testing.T) {
	t.Run("builds the full url from config", func(t *testing.T) {
		app, _ := newTestApp()
		doc := fixtureDoc("doc-1", "Release Checklist")

		cmd := app.yankURL(messages.YankRequested{Document: doc})
		require.NotNil(t, cmd)

		copied, ok := cmd().(messages.URLCopied)
		require.True(t, ok)
		// The clipboard may be unavailable in CI; the URL is built
		// either way.
		assert.Equal(t, "https://folio.example.com/doc/urlid-doc-1", copied.URL)
	})

	t.Run("ignores a nil document", func(t *testing.T) {
		app, _ := newTestApp()
		assert.Nil(t, app.yankURL(messages.YankRequested{}))
	})
}

func TestAppView(t *testing.T) {
	t.Run("shows loading before first resize", func(t *testing.T) {
		app, _ := newTestApp()
		assert.Contains(t, app.View(), "Loading")
	})

	t.Run("renders the browse view by default", func(t *testing.T) {
		app, _ := newTestApp()
		app.SetDimensions(100, 40)
		assert.Contains(t, app.View(), "folio")
	})

	t.Run("renders the help view", func(t *testing.T) {
		app, _ := newTestApp()
		app.SetDimensions(100, 40)
		app.currentView = messages.ViewHelp
		out := app.View()
		assert.Contains(t, out, "Keybindings")
		assert.Contains(t, out, "copy document URL")
	})
}
