package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"quizbank/internal/store"
)

// TestMigrateCommandCopiesBankToDuckDB verifies a JSON bank lands in DuckDB
// and that an existing destination needs --force.
func TestMigrateCommandCopiesBankToDuckDB(t *testing.T) {
	dir := t.TempDir()
	source := writeFixture(t, dir, "bank.json", bankFixture)
	dbPath := filepath.Join(dir, "bank.duckdb")
	target := "duckdb:" + dbPath

	var out, stderr bytes.Buffer
	if code := Run([]string{"migrate", "--to", target, source}, &out, &stderr); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr.String())
	}
	if !strings.Contains(out.String(), "Migrated 2 questions to duckdb "+dbPath) {
		t.Fatalf("unexpected output %q", out.String())
	}

	backend, err := store.OpenDuckDB(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	bank, found, err := backend.Read(context.Background())
	_ = backend.Close()
	if err != nil || !found {
		t.Fatalf("read migrated bank: found=%v err=%v", found, err)
	}
	if len(bank.Questions) != 2 || bank.Questions[1].Skill != "algebra" || bank.Questions[1].Grade != "8" {
		t.Fatalf("unexpected migrated bank: %+v", bank.Questions)
	}

	out.Reset()
	stderr.Reset()
	if code := Run([]string{"migrate", "--to", target, source}, &out, &stderr); code != ExitError {
		t.Fatalf("expected exit %d for existing destination, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), "use --force") {
		t.Fatalf("expected --force hint, got %q", stderr.String())
	}
	if code := Run([]string{"migrate", "--force", "--to", target, source}, &out, &stderr); code != ExitOK {
		t.Fatalf("expected forced migration to succeed, got %d (%s)", code, stderr.String())
	}
}

// TestMigrateCommandRefusesCorruptSource verifies nothing is written from a
// corrupt source bank.
func TestMigrateCommandRefusesCorruptSource(t *testing.T) {
	dir := t.TempDir()
	source := writeFixture(t, dir, "bank.json", `{"questions": [`)
	dest := filepath.Join(dir, "copy.json")

	var out, stderr bytes.Buffer
	if code := Run([]string{"migrate", "--to", "file:" + dest, source}, &out, &stderr); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if code := Run([]string{"list", "--ui", "plain", dest}, &out, &stderr); code != ExitError {
		t.Fatalf("expected destination to be missing, list returned %d", code)
	}
}
