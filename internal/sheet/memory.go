package sheet

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/naag/gh-project-sheet/internal/issues"
)

// MemoryStore keeps the sheet in memory
type MemoryStore struct {
	mu   sync.Mutex
	grid []issues.Row
}

// NewMemoryStore creates a store holding a copy of grid, header row first
func NewMemoryStore(grid ...issues.Row) *MemoryStore {
	s := &MemoryStore{}
	for _, row := range grid {
		s.grid = append(s.grid, slices.Clone(row))
	}
	return s
}

// Grid returns a copy of all rows, header included
func (s *MemoryStore) Grid() []issues.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid := make([]issues.Row, len(s.grid))
	for i, row := range s.grid {
		grid[i] = slices.Clone(row)
	}
	return grid
}

func (s *MemoryStore) ReadRows(ctx context.Context) ([]issues.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.grid) <= 1 {
		return nil, nil
	}
	rows := make([]issues.Row, 0, len(s.grid)-1)
	for _, row := range s.grid[1:] {
		rows = append(rows, slices.Clone(row))
	}
	return rows, nil
}

func (s *MemoryStore) ClearRows(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.grid) > 1 {
		s.grid = s.grid[:1]
	}
	return nil
}

func (s *MemoryStore) WriteHeader(ctx context.Context, header issues.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.grid) == 0 {
		s.grid = append(s.grid, nil)
	}
	s.grid[0] = slices.Clone(header)
	return nil
}

func (s *MemoryStore) WriteRows(ctx context.Context, startRow int, rows []issues.Row) error {
	if startRow < 1 {
		return fmt.Errorf("invalid start row %d", startRow)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.grid) < startRow-1+len(rows) {
		s.grid = append(s.grid, issues.Row{})
	}
	for i, row := range rows {
		s.grid[startRow-1+i] = slices.Clone(row)
	}
	return nil
}
