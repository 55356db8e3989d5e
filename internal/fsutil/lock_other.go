//go:build !unix

package fsutil

import "os"

// tryLock is a no-op where flock is unavailable; in-process callers still
// serialize through their own mutex.
func tryLock(_ *os.File) error {
	return nil
}

func unlock(_ *os.File) error {
	return nil
}
