package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/naag/gh-project-sheet/internal/config"
	"github.com/naag/gh-project-sheet/internal/runlock"
	"github.com/naag/gh-project-sheet/internal/sheet"
	"github.com/naag/gh-project-sheet/internal/sheet/csvstore"
	"github.com/naag/gh-project-sheet/internal/sheet/gsheets"
	"github.com/naag/gh-project-sheet/internal/sheet/sqlitestore"
)

// openStore opens the configured sheet. File backed sheets are locked
// until the returned close function is called.
func openStore(ctx context.Context, cfg config.SheetConfig) (sheet.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return sheet.NewMemoryStore(), noop, nil

	case config.BackendGSheets:
		store, err := gsheets.New(ctx, cfg.SpreadsheetID, cfg.Name, cfg.Credentials)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case config.BackendCSV:
		lock, err := runlock.Acquire(cfg.Output + ".lock")
		if err != nil {
			return nil, nil, err
		}
		store, err := csvstore.Open(cfg.Output)
		if err != nil {
			return nil, nil, errors.Join(err, lock.Release())
		}
		return store, lock.Release, nil

	case config.BackendSQLite:
		lock, err := runlock.Acquire(cfg.Output + ".lock")
		if err != nil {
			return nil, nil, err
		}
		store, err := sqlitestore.Open(ctx, cfg.Output)
		if err != nil {
			return nil, nil, errors.Join(err, lock.Release())
		}
		return store, func() error {
			return errors.Join(store.Close(), lock.Release())
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown sheet backend %q", cfg.Backend)
	}
}
