package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"quizbank/internal/fsutil"
	"quizbank/internal/question"
)

// FileBackend stores the bank as one indented JSON document on disk.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend for the JSON file at path.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	return &FileBackend{path: path}, nil
}

// Name identifies the backend.
func (b *FileBackend) Name() string {
	return "file " + b.path
}

// Read loads the document. A missing file is not an error.
func (b *FileBackend) Read(_ context.Context) (question.Bank, bool, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return question.Bank{}, false, nil
		}
		return question.Bank{}, false, &ReadError{Source: b.Name(), Err: err}
	}
	bank, err := DecodeBank(b.Name(), data)
	if err != nil {
		return question.Bank{}, true, err
	}
	return bank, true, nil
}

// Write replaces the document using an atomic rename.
func (b *FileBackend) Write(_ context.Context, bank question.Bank) error {
	payload, err := EncodeBank(bank)
	if err != nil {
		return &WriteError{Source: b.Name(), Err: err}
	}
	if err := fsutil.WriteFileAtomic(b.path, payload); err != nil {
		return &WriteError{Source: b.Name(), Err: err}
	}
	return nil
}

// Lock takes the cross-process writer lock for the document.
func (b *FileBackend) Lock(ctx context.Context) (func() error, error) {
	lock, err := fsutil.LockFile(ctx, b.path)
	if err != nil {
		return nil, err
	}
	return lock.Unlock, nil
}

// Close is a no-op for files.
func (b *FileBackend) Close() error {
	return nil
}
