package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quizbank/internal/store"
)

func corruptStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(`{"questions": [`), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	backend, err := store.NewFileBackend(path)
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	st := store.New(backend, time.Now)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// TestInitStoreCorruptBankIsFatalByDefault verifies startup stops on a
// malformed bank when degraded mode is off.
func TestInitStoreCorruptBankIsFatalByDefault(t *testing.T) {
	var logs bytes.Buffer
	err := initStore(context.Background(), corruptStore(t), false, log.New(&logs, "", 0))
	if !store.IsCorrupt(err) {
		t.Fatalf("expected corrupt error, got %v", err)
	}
}

// TestInitStoreCorruptBankStartsDegraded verifies degraded mode logs the
// corruption and lets the server start.
func TestInitStoreCorruptBankStartsDegraded(t *testing.T) {
	var logs bytes.Buffer
	if err := initStore(context.Background(), corruptStore(t), true, log.New(&logs, "", 0)); err != nil {
		t.Fatalf("expected degraded start, got %v", err)
	}
	if !strings.Contains(logs.String(), "corrupt questions bank") {
		t.Fatalf("expected a warning, got %q", logs.String())
	}
}

// TestInitStoreSeedsMissingBank verifies a missing bank is created.
func TestInitStoreSeedsMissingBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	backend, err := store.NewFileBackend(path)
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	st := store.New(backend, time.Now)
	t.Cleanup(func() { _ = st.Close() })
	if err := initStore(context.Background(), st, false, log.New(&bytes.Buffer{}, "", 0)); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected seeded bank: %v", err)
	}
}
