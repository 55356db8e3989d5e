package fsutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// lockRetryInterval is how often LockFile polls a contended lock.
const lockRetryInterval = 10 * time.Millisecond

// ErrLocked reports that another holder owns the lock.
var ErrLocked = errors.New("file is locked")

// Lock is an exclusive advisory lock on a sidecar file.
type Lock struct {
	file *os.File
}

// LockPath returns the sidecar lock file used for a document path.
func LockPath(path string) string {
	return path + ".lock"
}

// LockFile takes an exclusive lock for path, waiting until ctx is done.
// The lock serializes writers across processes on platforms that support it.
func LockFile(ctx context.Context, path string) (*Lock, error) {
	lockPath := LockPath(path)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()
	for {
		err := tryLock(file)
		if err == nil {
			return &Lock{file: file}, nil
		}
		if !errors.Is(err, ErrLocked) {
			_ = file.Close()
			return nil, err
		}
		select {
		case <-ctx.Done():
			_ = file.Close()
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Unlock releases the lock. It is safe to call on a nil lock.
func (l *Lock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlock(l.file)
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
