package index

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// buildLock guards cache writes across processes using gofrs/flock.
// Two processes racing to rebuild the same cache key compute identical
// content, so the lock only avoids wasted interleaved writes; it is not a
// correctness requirement. Works on all platforms.
type buildLock struct {
	flock *flock.Flock
}

// newBuildLock creates a lock file inside the cache directory.
func newBuildLock(dir string) *buildLock {
	return &buildLock{
		flock: flock.New(filepath.Join(dir, ".build.lock")),
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired.
func (l *buildLock) TryLock() (bool, error) {
	dir := filepath.Dir(l.flock.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return acquired, nil
}

// Unlock releases the lock. Safe to call when not held.
func (l *buildLock) Unlock() error {
	return l.flock.Unlock()
}
