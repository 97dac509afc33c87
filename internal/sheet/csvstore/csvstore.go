// Package csvstore keeps the sheet in a CSV file.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/naag/gh-project-sheet/internal/issues"
	"github.com/naag/gh-project-sheet/internal/sheet"
)

// Store buffers the sheet in memory and writes the file on Commit
type Store struct {
	*sheet.MemoryStore
	path string
}

// Open loads the CSV file at path. A missing file is an empty sheet.
func Open(path string) (*Store, error) {
	grid, err := readFile(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("opened csv sheet", "path", path, "rows", len(grid))
	return &Store{MemoryStore: sheet.NewMemoryStore(grid...), path: path}, nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

func readFile(path string) ([]issues.Row, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var grid []issues.Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		grid = append(grid, issues.Row(record))
	}
	return grid, nil
}

// Commit replaces the file with the buffered sheet. Rows are padded to the
// header width so empty rows survive a reload.
func (s *Store) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	grid := s.Grid()
	width := 0
	if len(grid) > 0 {
		width = len(grid[0])
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	for _, row := range grid {
		if err := w.Write(sheet.PadRow(row, width)); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	slog.Debug("wrote csv sheet", "path", s.path, "rows", len(grid))
	return nil
}
