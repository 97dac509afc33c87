// Package runlock keeps two imports from rewriting the same sheet at once.
package runlock

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another run holds the lock
var ErrLocked = errors.New("another import is already running")

// Lock is a held run lock
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the lock file at path without waiting
func Acquire(path string) (*Lock, error) {
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	slog.Debug("acquired run lock", "path", path)
	return &Lock{fl: fl}, nil
}

// Release gives the lock up
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.fl.Path(), err)
	}
	return nil
}
