package fsutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"quizbank/internal/testutil"
)

func TestWriteFileAtomic_NoTmpLeftBehind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bank.json")
	if err := WriteFileAtomic(path, []byte(`{"questions":[]}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected tmp file to be removed, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"questions":[]}` {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestWriteFileAtomic_SyncsParentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	original := syncDir
	t.Cleanup(func() { syncDir = original })
	var synced []string
	syncDir = func(d string) error {
		if _, err := os.Stat(filepath.Join(d, "bank.json")); err != nil {
			t.Errorf("dir synced before rename: %v", err)
		}
		synced = append(synced, d)
		return original(d)
	}
	if err := WriteFileAtomic(filepath.Join(dir, "bank.json"), []byte(`{}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(synced) != 1 || synced[0] != dir {
		t.Fatalf("expected one sync of %s, got %v", dir, synced)
	}
}

func TestWriteFileAtomic_ReportsDirSyncFailure(t *testing.T) {
	original := syncDir
	t.Cleanup(func() { syncDir = original })
	syncDir = func(string) error { return errors.New("disk gone") }
	if err := WriteFileAtomic(filepath.Join(t.TempDir(), "bank.json"), []byte(`{}`)); err == nil {
		t.Fatalf("expected dir sync error")
	}
}

func TestLockFile_SecondHolderWaits(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("advisory locks unavailable")
	}
	path := filepath.Join(t.TempDir(), "bank.json")
	ctx := testutil.Context(t, 2*time.Second)
	first, err := LockFile(ctx, path)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}

	shortCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if _, err := LockFile(shortCtx, path); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline while locked, got %v", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	second, err := LockFile(ctx, path)
	if err != nil {
		t.Fatalf("second lock: %v", err)
	}
	_ = second.Unlock()
}
