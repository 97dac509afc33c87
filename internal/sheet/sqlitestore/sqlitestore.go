// Package sqlitestore keeps the sheet in a SQLite database, one table row
// per sheet row.
package sqlitestore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/naag/gh-project-sheet/internal/issues"
)

//go:embed schema.sql
var schemaFS embed.FS

const headerRow = 1

// Store is a sheet backed by the sheet_rows table. Writes are grouped in one
// transaction that is committed by Commit.
type Store struct {
	db *sql.DB
	tx *sql.Tx
}

// Open opens or creates the database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close rolls back uncommitted writes and closes the database
func (s *Store) Close() error {
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	return s.db.Close()
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) conn() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *Store) begin(ctx context.Context) (*sql.Tx, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	s.tx = tx
	return tx, nil
}

// Header returns row 1, or nil when the sheet is empty
func (s *Store) Header(ctx context.Context) (issues.Row, error) {
	rows, err := s.query(ctx, `SELECT cells FROM sheet_rows WHERE row_index = ?`, headerRow)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (s *Store) ReadRows(ctx context.Context) ([]issues.Row, error) {
	return s.query(ctx, `SELECT cells FROM sheet_rows WHERE row_index > ? ORDER BY row_index`, headerRow)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]issues.Row, error) {
	rows, err := s.conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sheet rows: %w", err)
	}
	defer rows.Close()

	var out []issues.Row
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("scan sheet row: %w", err)
		}
		row := issues.Row{}
		if err := json.Unmarshal([]byte(cells), &row); err != nil {
			return nil, fmt.Errorf("decode sheet row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	return out, nil
}

func (s *Store) ClearRows(ctx context.Context) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE row_index > ?`, headerRow); err != nil {
		return fmt.Errorf("clear sheet rows: %w", err)
	}
	return nil
}

func (s *Store) WriteHeader(ctx context.Context, header issues.Row) error {
	return s.WriteRows(ctx, headerRow, []issues.Row{header})
}

func (s *Store) WriteRows(ctx context.Context, startRow int, rows []issues.Row) error {
	if startRow < 1 {
		return fmt.Errorf("invalid start row %d", startRow)
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sheet_rows(row_index, cells) VALUES (?, ?)
		ON CONFLICT(row_index) DO UPDATE SET cells = excluded.cells, updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if row == nil {
			row = issues.Row{}
		}
		cells, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode sheet row: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, startRow+i, string(cells)); err != nil {
			return fmt.Errorf("write row %d: %w", startRow+i, err)
		}
	}
	return nil
}

// Commit commits the pending writes
func (s *Store) Commit(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
