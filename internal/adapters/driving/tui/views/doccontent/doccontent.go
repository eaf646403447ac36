// Package doccontent provides the document reader view for the TUI.
package doccontent

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliohq/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/foliohq/folio-cli/internal/core/domain"
	"github.com/foliohq/folio-cli/internal/core/ports/driving"
)

// View is the document reader. It holds a live reference into the
// document table, so in-place merges of the entity show on the next
// render without reloading.
type View struct {
	styles    *styles.Styles
	documents driving.DocumentsService

	document     *domain.Document
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	statusMsg    string
}

// NewView creates a new reader view.
func NewView(s *styles.Styles, documents driving.DocumentsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		documents: documents,
		width:     80,
		height:    24,
	}
}

// SetDocument points the reader at a document and refreshes it.
func (v *View) SetDocument(doc *domain.Document) tea.Cmd {
	v.document = doc
	v.scrollOffset = 0
	v.err = nil
	v.statusMsg = ""
	v.wrapContent()
	return v.loadDocument()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadDocument re-fetches the document. A cached entity resolves
// without a network call; the table merge lands on v.document.
func (v *View) loadDocument() tea.Cmd {
	doc := v.document
	return func() tea.Msg {
		if doc == nil {
			return messages.DocumentLoaded{Err: fmt.Errorf("no document selected")}
		}
		v.loading = true
		fetched, err := v.documents.Fetch(context.Background(), doc.ID, domain.FetchOptions{})
		return messages.DocumentLoaded{Document: fetched, Err: err}
	}
}

// Update handles messages for the reader view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.wrapContent()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.document = msg.Document
			v.err = nil
			v.wrapContent()
		}
		return v, nil

	case messages.URLCopied:
		if msg.Err != nil {
			v.statusMsg = "Copy: " + msg.Err.Error()
		} else {
			v.statusMsg = "Copied " + msg.URL
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d":
		v.scrollOffset += v.visibleLines()
		if max := v.maxScrollOffset(); v.scrollOffset > max {
			v.scrollOffset = max
		}
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "y":
		if v.document != nil {
			doc := v.document
			return v, func() tea.Msg {
				return messages.YankRequested{Document: doc}
			}
		}
	case "r":
		return v, v.loadDocument()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBrowse}
		}
	case "q":
		return v, tea.Quit
	}

	return v, nil
}

// wrapContent wraps the document text to the view width.
func (v *View) wrapContent() {
	if v.document == nil || v.document.Text == "" {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(v.document.Text, "\n")
	v.lines = make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		if len(line) <= contentWidth {
			v.lines = append(v.lines, line)
			continue
		}
		for len(line) > contentWidth {
			v.lines = append(v.lines, line[:contentWidth])
			line = line[contentWidth:]
		}
		if line != "" {
			v.lines = append(v.lines, line)
		}
	}

	if max := v.maxScrollOffset(); v.scrollOffset > max {
		v.scrollOffset = max
	}
}

// visibleLines returns the number of text lines that fit on screen.
func (v *View) visibleLines() int {
	// Title, separator, footer and padding.
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	max := len(v.lines) - v.visibleLines()
	if max < 0 {
		max = 0
	}
	return max
}

// View renders the reader.
func (v *View) View() string {
	var b strings.Builder

	title := "Document"
	if v.document != nil {
		if v.document.Title != "" {
			title = v.document.Title
		} else {
			title = v.document.ID
		}
	}
	b.WriteString(v.styles.Title.Render(title))
	if v.document != nil && v.document.PublishedAt == nil {
		b.WriteString(" " + v.styles.Draft.Render("draft"))
	}
	b.WriteString("\n")

	sepWidth := v.width - 4
	if sepWidth > 60 {
		sepWidth = 60
	}
	if sepWidth < 1 {
		sepWidth = 1
	}
	b.WriteString(strings.Repeat("─", sepWidth))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
	default:
		visible := v.visibleLines()
		for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
			b.WriteString(v.styles.Normal.Render(v.lines[i]))
			b.WriteString("\n")
		}
		if len(v.lines) > visible {
			percentage := 0
			if v.maxScrollOffset() > 0 {
				percentage = v.scrollOffset * 100 / v.maxScrollOffset()
			}
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%]", percentage)))
		}
	}

	b.WriteString("\n\n")
	if v.statusMsg != "" {
		b.WriteString(v.styles.Success.Render(v.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render(
		"[↑/↓] scroll  [g/G] top/bottom  [y] copy url  [r] reload  [esc] back  [q] quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Document returns the current document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view has received dimensions.
func (v *View) Ready() bool {
	return v.ready
}
