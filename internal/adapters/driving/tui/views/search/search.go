// Package search provides the live search view for the TUI.
package search

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/components/input"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/components/list"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/components/status"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driving"
)

// debounceDelay is how long typing must pause before a search fires.
const debounceDelay = 300 * time.Millisecond

// searchLimit is the page size requested per query.
const searchLimit = 25

// debounceElapsed fires after the debounce delay. The sequence number
// identifies which edit scheduled it; a stale tick is ignored.
type debounceElapsed struct {
	seq int
}

// View is the live search view with input, results list and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	documents driving.DocumentsService
	ctx       context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing, false = navigating results
	seq        int  // debounce sequence, bumped on every edit
	lastQuery  string
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documents driving.DocumentsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		documents:  documents,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case debounceElapsed:
		// Only the tick scheduled by the latest edit may fire.
		if msg.seq != v.seq {
			return v, nil
		}
		query := v.input.Value()
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		return v, v.performSearch(query)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.URLCopied:
		if msg.Err != nil {
			v.statusbar.SetMessage("Copy: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("Copied " + msg.URL)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc leaves the view, from either mode.
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBrowse}
		}
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleResultsKey(msg)
}

// handleInputKey processes keys while typing.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Enter searches immediately and moves to results mode.
	if msg.Type == tea.KeyEnter {
		query := v.input.Value()
		if query == "" {
			return v, nil
		}
		v.seq++ // cancel any pending debounce tick
		v.input.Remember(query)
		v.statusbar.SetState(status.StateSearching)
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch(query)
	}

	// Down with results on screen moves to the list.
	if msg.Type == tea.KeyDown && !v.list.IsEmpty() {
		v.focusInput = false
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)

	// Schedule a debounced search when the edit changed the query.
	if query := v.input.Value(); query != v.lastQuery {
		v.lastQuery = query
		v.seq++
		seq := v.seq
		debounce := tea.Tick(debounceDelay, func(time.Time) tea.Msg {
			return debounceElapsed{seq: seq}
		})
		return v, tea.Batch(cmd, debounce)
	}

	return v, cmd
}

// handleResultsKey processes keys while navigating results.
func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.list.Selected() == 0 {
			// Off the top of the list, back to the input.
			v.focusInput = true
			return v, v.input.Focus()
		}
		v.list.MoveUp()

	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()

	case keymap.Matches(key, v.keymap.Select):
		if result := v.list.SelectedResult(); result != nil {
			doc := result.Document
			return v, func() tea.Msg {
				return messages.DocumentOpened{Document: doc}
			}
		}

	case keymap.Matches(key, v.keymap.Yank):
		if result := v.list.SelectedResult(); result != nil {
			doc := result.Document
			return v, func() tea.Msg {
				return messages.YankRequested{Document: doc}
			}
		}

	case keymap.Matches(key, v.keymap.Search):
		// Back to the input for a new query.
		v.focusInput = true
		return v, v.input.Focus()

	case keymap.Matches(key, v.keymap.Quit):
		return v, tea.Quit
	}

	return v, nil
}

// performSearch runs the query against the document store.
func (v *View) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := v.documents.Search(v.ctx, query, domain.SearchOptions{Limit: searchLimit})
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

// handleSearchCompleted processes search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	// A newer query may have been typed while this one ran.
	if msg.Query != v.input.Value() {
		return
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
}

// View renders the search view.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("folio"),
		"",
		v.input.View(),
		"",
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
	v.lastQuery = query
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Ready returns whether the view has received dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// Reset returns the view to a fresh input state.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.lastQuery = ""
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Clear()
}
