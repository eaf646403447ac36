// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/styles"
)

// SearchInput wraps a bubbles textinput with search-specific styling
// and a recall buffer of previously submitted queries. Ctrl+p and
// ctrl+n cycle through the buffer, leaving the arrow keys free for
// result navigation.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
	history   []string
	histPos   int
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search documents..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+p":
			s.recallPrev()
			return s, nil
		case "ctrl+n":
			s.recallNext()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// Remember records a submitted query for ctrl+p recall. Blank queries
// and immediate repeats are dropped.
func (s *SearchInput) Remember(query string) {
	if query == "" {
		s.histPos = len(s.history)
		return
	}
	if n := len(s.history); n == 0 || s.history[n-1] != query {
		s.history = append(s.history, query)
	}
	s.histPos = len(s.history)
}

// recallPrev steps back through remembered queries.
func (s *SearchInput) recallPrev() {
	if s.histPos == 0 || len(s.history) == 0 {
		return
	}
	s.histPos--
	s.textinput.SetValue(s.history[s.histPos])
	s.textinput.CursorEnd()
}

// recallNext steps forward, ending on a blank line past the newest
// entry.
func (s *SearchInput) recallNext() {
	if s.histPos >= len(s.history) {
		return
	}
	s.histPos++
	if s.histPos == len(s.history) {
		s.textinput.SetValue("")
		return
	}
	s.textinput.SetValue(s.history[s.histPos])
	s.textinput.CursorEnd()
}

// View renders the search input.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search: ")
	input := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Account for label and padding
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input, keeping the recall buffer.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
	s.histPos = len(s.history)
}
