package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naag/gh-project-sheet/internal/issues"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rows, err := store.ReadRows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, store.WriteHeader(ctx, issues.Row{"h1", "h2"}))
	require.NoError(t, store.WriteRows(ctx, 3, []issues.Row{{"b1", "b2"}}))
	assert.Equal(t, []issues.Row{{"h1", "h2"}, {}, {"b1", "b2"}}, store.Grid())

	rows, err = store.ReadRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []issues.Row{{}, {"b1", "b2"}}, rows)

	require.NoError(t, store.ClearRows(ctx))
	assert.Equal(t, []issues.Row{{"h1", "h2"}}, store.Grid())

	assert.Error(t, store.WriteRows(ctx, 0, []issues.Row{{"x"}}))
}

func TestMemoryStoreCopiesRows(t *testing.T) {
	row := issues.Row{"a"}
	store := NewMemoryStore(row)
	row[0] = "changed"

	grid := store.Grid()
	grid[0][0] = "also changed"

	assert.Equal(t, []issues.Row{{"a"}}, store.Grid())
}
