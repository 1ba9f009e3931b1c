package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created inside directories held by LockDir.
const LockFileName = ".corpusprep.lock"

// DirLock is an exclusive advisory lock on an output directory.
type DirLock struct {
	lock *flock.Flock
}

// LockDir acquires the lock for dir without blocking. It fails if another
// corpusprep process is writing into the same directory.
func LockDir(dir string) (*DirLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output directory %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("output directory %s is locked by another corpusprep process", dir)
	}
	return &DirLock{lock: lock}, nil
}

// Unlock releases the lock and removes the lock file.
func (l *DirLock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	path := l.lock.Path()
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", path, err)
	}
	_ = os.Remove(path)
	l.lock = nil
	return nil
}
