// Package fetch pages through the items of GitHub projects.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/naag/gh-project-sheet/internal/github"
)

// DefaultMaxPages bounds pagination when no limit is configured
const DefaultMaxPages = 1000

// ErrPageLimit is returned when a project has more pages than allowed
var ErrPageLimit = errors.New("page limit reached")

// PageSource returns single pages of project items
type PageSource interface {
	FetchItemsPage(ctx context.Context, projectID string, after *string) (*github.ItemsPage, error)
}

// Pages lazily yields the item pages of a project in order. The first
// request carries no cursor; every following one resumes from the previous
// page's end cursor. Iteration stops after the first error. A maxPages of 0
// or less disables the limit.
func Pages(ctx context.Context, src PageSource, projectID string, maxPages int) iter.Seq2[*github.ItemsPage, error] {
	return func(yield func(*github.ItemsPage, error) bool) {
		var after *string
		for n := 0; ; n++ {
			if maxPages > 0 && n >= maxPages {
				yield(nil, fmt.Errorf("%w: project %s has more than %d pages", ErrPageLimit, projectID, maxPages))
				return
			}

			page, err := src.FetchItemsPage(ctx, projectID, after)
			if err != nil {
				yield(nil, err)
				return
			}

			slog.Debug("page fetched",
				"project", projectID,
				"page", n+1,
				"items", len(page.Items),
				"cursor", page.PageInfo.EndCursor,
			)

			if !yield(page, nil) {
				return
			}
			if !page.PageInfo.HasNextPage {
				return
			}

			cursor := page.PageInfo.EndCursor
			after = &cursor
		}
	}
}
