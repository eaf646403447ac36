package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

func TestNewCollectionTable(t *testing.T) {
	table := NewCollectionTable()
	require.NotNil(t, table)
	assert.Equal(t, 0, table.Len())
}

func TestCollectionTable_Add_FirstSighting(t *testing.T) {
	table := NewCollectionTable()

	col := &domain.Collection{ID: "col-1", Name: "Engineering"}
	got := table.Add(col)

	assert.Same(t, col, got)
	assert.Same(t, col, table.Get("col-1"))
}

func TestCollectionTable_Add_PatchesInPlace(t *testing.T) {
	table := NewCollectionTable()

	original := table.Add(&domain.Collection{ID: "col-1", Name: "Old Name"})
	got := table.Add(&domain.Collection{ID: "col-1", Name: "New Name"})

	assert.Same(t, original, got)
	assert.Equal(t, "New Name", original.Name)
	assert.Equal(t, 1, table.Len())
}

func TestCollectionTable_Add_ReplacesNavigationTree(t *testing.T) {
	table := NewCollectionTable()

	table.Add(&domain.Collection{
		ID:        "col-1",
		Documents: []*domain.NavigationNode{{ID: "doc-1", Title: "Old"}},
	})
	col := table.Add(&domain.Collection{
		ID: "col-1",
		Documents: []*domain.NavigationNode{
			{ID: "doc-1", Title: "New"},
			{ID: "doc-2", Title: "Added"},
		},
	})

	// Verify a refresh swaps in the full new tree
	require.Len(t, col.Documents, 2)
	assert.Equal(t, "New", col.Documents[0].Title)
}

func TestCollectionTable_Get_NotFound(t *testing.T) {
	table := NewCollectionTable()
	assert.Nil(t, table.Get("nonexistent"))
}

func TestCollectionTable_All_InsertionOrder(t *testing.T) {
	table := NewCollectionTable()

	table.Add(&domain.Collection{ID: "col-b"})
	table.Add(&domain.Collection{ID: "col-a"})

	all := table.All()
	require.Len(t, all, 2)
	assert.Equal(t, "col-b", all[0].ID)
	assert.Equal(t, "col-a", all[1].ID)
}

func TestCollectionTable_Remove(t *testing.T) {
	table := NewCollectionTable()

	table.Add(&domain.Collection{ID: "col-1"})
	table.Remove("col-1")

	assert.Nil(t, table.Get("col-1"))
	assert.Equal(t, 0, table.Len())
}

func TestCollectionTable_Concurrency_AddAndGet(t *testing.T) {
	table := NewCollectionTable()

	var wg sync.WaitGroup
	numGoroutines := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			table.Add(&domain.Collection{ID: fmt.Sprintf("col-%d", id)})
			_ = table.Get(fmt.Sprintf("col-%d", id))
			_ = table.All()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, numGoroutines, table.Len())
}
