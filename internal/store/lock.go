package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock serializes writers of one index across processes. The lock file sits
// next to the index at <path>.lock.
type Lock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewLock returns an unlocked lock guarding the index at indexPath.
func NewLock(indexPath string) *Lock {
	lockPath := indexPath + ".lock"
	return &Lock{path: lockPath, flock: flock.New(lockPath)}
}

// TryLock acquires the lock without blocking. It reports false if another
// process holds it.
func (l *Lock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire index lock: %w", err)
	}
	l.locked = ok
	return ok, nil
}

// Unlock releases the lock. Calling it on an unlocked Lock is a no-op.
func (l *Lock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release index lock: %w", err)
	}
	return nil
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.path }
