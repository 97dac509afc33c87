package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naag/gh-project-sheet/internal/fetch"
	"github.com/naag/gh-project-sheet/internal/github"
	"github.com/naag/gh-project-sheet/internal/issues"
	"github.com/naag/gh-project-sheet/internal/sheet"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestWriteAndReadRows(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "sheet.db"))

	require.NoError(t, store.WriteHeader(ctx, issues.Row{"Team", "Title"}))
	require.NoError(t, store.WriteRows(ctx, 2, []issues.Row{{"Alpha", "a1"}, {}, {"Beta", "b1"}}))
	require.NoError(t, store.Commit(ctx))

	header, err := store.Header(ctx)
	require.NoError(t, err)
	assert.Equal(t, issues.Row{"Team", "Title"}, header)

	rows, err := store.ReadRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []issues.Row{{"Alpha", "a1"}, {}, {"Beta", "b1"}}, rows)

	require.NoError(t, store.ClearRows(ctx))
	require.NoError(t, store.Commit(ctx))
	rows, err = store.ReadRows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	header, err = store.Header(ctx)
	require.NoError(t, err)
	assert.Equal(t, issues.Row{"Team", "Title"}, header)
}

func TestCloseDiscardsUncommittedWrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sheet.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.WriteRows(ctx, 2, []issues.Row{{"lost"}}))
	require.NoError(t, store.Close())

	reopened := openTestStore(t, path)
	rows, err := reopened.ReadRows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMergeAcrossRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sheet.db")

	for _, title := range []string{"first", "second"} {
		store, err := Open(ctx, path)
		require.NoError(t, err)

		project := &fetch.ProjectResult{
			ProjectTitle: "Alpha",
			Issues:       []github.ProjectItem{github.NewIssueItem(title, "")},
		}
		_, err = sheet.NewMerger(store).Merge(ctx, []*fetch.ProjectResult{project})
		require.NoError(t, err)
		require.NoError(t, store.Close())
	}

	store := openTestStore(t, path)
	header, err := store.Header(ctx)
	require.NoError(t, err)
	assert.Equal(t, issues.Header, header)

	rows, err := store.ReadRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "first", rows[0][1])
	assert.Equal(t, "second", rows[1][1])
}
