// Package sheet merges imported issue rows into a tabular store.
package sheet

import (
	"context"

	"github.com/naag/gh-project-sheet/internal/issues"
)

// Store is a sheet-like table. Row 1 holds the header, data starts at row 2.
// Row numbers are 1-based.
type Store interface {
	// ReadRows returns the data rows 2..N
	ReadRows(ctx context.Context) ([]issues.Row, error)
	// ClearRows removes every data row, leaving the header in place
	ClearRows(ctx context.Context) error
	// WriteHeader overwrites row 1
	WriteHeader(ctx context.Context, header issues.Row) error
	// WriteRows writes rows starting at startRow
	WriteRows(ctx context.Context, startRow int, rows []issues.Row) error
}

// Committer is implemented by stores that buffer writes until the merge is done
type Committer interface {
	Commit(ctx context.Context) error
}

// PadRow returns row extended with empty cells up to width
func PadRow(row issues.Row, width int) issues.Row {
	if len(row) >= width {
		return row
	}
	padded := make(issues.Row, width)
	copy(padded, row)
	return padded
}
