package sheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naag/gh-project-sheet/internal/fetch"
	"github.com/naag/gh-project-sheet/internal/issues"
)

// firstDataRow is the row right below the header
const firstDataRow = 2

// Report summarizes a merge
type Report struct {
	// Existing is the number of rows kept from earlier runs
	Existing int
	// New is the number of rows appended, failed ones included
	New int
	// Failed is the number of issues written as empty rows
	Failed int
}

// Merger appends the rows of freshly fetched projects below the rows
// already present in a store
type Merger struct {
	store Store
}

// NewMerger creates a merger writing to store
func NewMerger(store Store) *Merger {
	return &Merger{store: store}
}

// Merge rewrites the store as header, existing rows, then the rows of every
// issue in projects. Existing rows are never changed or deduplicated.
func (m *Merger) Merge(ctx context.Context, projects []*fetch.ProjectResult) (Report, error) {
	var report Report

	existing, err := m.store.ReadRows(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to read existing rows: %w", err)
	}
	report.Existing = len(existing)

	if err := m.store.ClearRows(ctx); err != nil {
		return report, fmt.Errorf("failed to clear rows: %w", err)
	}
	if err := m.store.WriteHeader(ctx, issues.Header); err != nil {
		return report, fmt.Errorf("failed to write header: %w", err)
	}

	if len(projects) == 0 {
		slog.Info("no projects to merge, keeping existing rows", "existing", report.Existing)
		if err := m.writeRows(ctx, firstDataRow, existing); err != nil {
			return report, err
		}
		return report, m.commit(ctx)
	}

	results := issues.NormalizeAll(projects)
	for _, result := range results {
		if result.Failed() {
			report.Failed++
		}
	}
	rows := issues.Rows(results)
	report.New = len(rows)

	if err := m.writeRows(ctx, firstDataRow, existing); err != nil {
		return report, err
	}
	if err := m.writeRows(ctx, firstDataRow+len(existing), rows); err != nil {
		return report, err
	}

	slog.Info("rows merged",
		"existing", report.Existing,
		"new", report.New,
		"failed", report.Failed,
	)
	return report, m.commit(ctx)
}

func (m *Merger) writeRows(ctx context.Context, startRow int, rows []issues.Row) error {
	if len(rows) == 0 {
		return nil
	}
	if err := m.store.WriteRows(ctx, startRow, rows); err != nil {
		return fmt.Errorf("failed to write %d rows at row %d: %w", len(rows), startRow, err)
	}
	return nil
}

func (m *Merger) commit(ctx context.Context) error {
	c, ok := m.store.(Committer)
	if !ok {
		return nil
	}
	if err := c.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit sheet: %w", err)
	}
	return nil
}
