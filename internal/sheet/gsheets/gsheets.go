// Package gsheets keeps the sheet in a Google Sheets tab.
package gsheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/naag/gh-project-sheet/internal/issues"
)

const (
	valueInputOption  = "USER_ENTERED"
	valueRenderOption = "FORMATTED_VALUE"
)

// Store reads and writes the values of one tab of a spreadsheet
type Store struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	sheetName     string
	lastColumn    string
}

// New creates a store using the service account or OAuth credentials in
// credentialsFile. An empty file falls back to application default credentials.
func New(ctx context.Context, spreadsheetID, sheetName, credentialsFile string, opts ...option.ClientOption) (*Store, error) {
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return NewWithService(srv, spreadsheetID, sheetName), nil
}

// NewWithService creates a store on an existing service
func NewWithService(srv *sheets.Service, spreadsheetID, sheetName string) *Store {
	return &Store{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		lastColumn:    ColumnName(len(issues.Header)),
	}
}

// A1 returns an A1 range on the store's tab
func (s *Store) A1(cells string) string {
	return "'" + strings.ReplaceAll(s.sheetName, "'", "''") + "'!" + cells
}

// ColumnName returns the A1 letters of the n-th column, starting at 1
func ColumnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

func (s *Store) ReadRows(ctx context.Context) ([]issues.Row, error) {
	resp, err := s.values.Get(s.spreadsheetID, s.A1("A2:"+s.lastColumn)).
		ValueRenderOption(valueRenderOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet values: %w", err)
	}

	rows := make([]issues.Row, len(resp.Values))
	for i, values := range resp.Values {
		row := make(issues.Row, len(values))
		for j, v := range values {
			row[j] = cellString(v)
		}
		rows[i] = row
	}
	slog.Debug("read sheet values", "spreadsheet", s.spreadsheetID, "sheet", s.sheetName, "rows", len(rows))
	return rows, nil
}

func cellString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (s *Store) ClearRows(ctx context.Context) error {
	_, err := s.values.Clear(s.spreadsheetID, s.A1("A2:"+s.lastColumn), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet values: %w", err)
	}
	return nil
}

func (s *Store) WriteHeader(ctx context.Context, header issues.Row) error {
	return s.WriteRows(ctx, 1, []issues.Row{header})
}

func (s *Store) WriteRows(ctx context.Context, startRow int, rows []issues.Row) error {
	if startRow < 1 {
		return fmt.Errorf("invalid start row %d", startRow)
	}

	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	_, err := s.values.Update(s.spreadsheetID, s.A1(fmt.Sprintf("A%d", startRow)), &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write %d rows at row %d: %w", len(rows), startRow, err)
	}
	return nil
}
