package list

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

func result(title, context string, ranking float64) domain.SearchResult {
	return domain.SearchResult{
		Ranking: ranking,
		Context: context,
		Document: &domain.Document{
			ID:        "doc-" + title,
			Title:     title,
			UpdatedAt: time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestResultListNavigation(t *testing.T) {
	l := NewResultList(nil)
	l.SetResults([]domain.SearchResult{
		result("First", "…one…", 0.9),
		result("Second", "…two…", 0.7),
		result("Third", "…three…", 0.5),
	})

	require.Equal(t, 0, l.Selected())

	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	// Bottom of the list pins.
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	l.MoveUp()
	assert.Equal(t, 1, l.Selected())

	// Top of the list pins.
	l.MoveUp()
	l.MoveUp()
	assert.Equal(t, 0, l.Selected())
}

func TestResultListSelection(t *testing.T) {
	t.Run("selected result", func(t *testing.T) {
		l := NewResultList(nil)
		l.SetResults([]domain.SearchResult{
			result("First", "", 0.9),
			result("Second", "", 0.7),
		})

		l.MoveDown()
		selected := l.SelectedResult()
		require.NotNil(t, selected)
		assert.Equal(t, "Second", selected.Document.Title)
	})

	t.Run("empty list has no selection", func(t *testing.T) {
		l := NewResultList(nil)
		assert.Nil(t, l.SelectedResult())
		assert.True(t, l.IsEmpty())
		assert.Equal(t, 0, l.Count())
	})

	t.Run("new results reset the selection", func(t *testing.T) {
		l := NewResultList(nil)
		l.SetResults([]domain.SearchResult{
			result("First", "", 0.9),
			result("Second", "", 0.7),
		})
		l.MoveDown()
		require.Equal(t, 1, l.Selected())

		l.SetResults([]domain.SearchResult{result("Third", "", 0.5)})
		assert.Equal(t, 0, l.Selected())
	})

	t.Run("set selected ignores out of range", func(t *testing.T) {
		l := NewResultList(nil)
		l.SetResults([]domain.SearchResult{result("First", "", 0.9)})
		l.SetSelected(5)
		assert.Equal(t, 0, l.Selected())
	})
}

func TestResultListView(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		l := NewResultList(nil)
		assert.Contains(t, l.View(), "No results")
	})

	t.Run("renders count, ranking and stripped snippet", func(t *testing.T) {
		l := NewResultList(nil)
		l.SetDimensions(100, 20)
		l.SetResults([]domain.SearchResult{
			result("Release Checklist", "…the <b>release</b> steps…", 0.91),
		})

		out := l.View()
		assert.Contains(t, out, "Results (1)")
		assert.Contains(t, out, "Release Checklist")
		assert.Contains(t, out, "0.91")
		assert.Contains(t, out, "…the release steps…")
		assert.NotContains(t, out, "<b>")
	})
}
