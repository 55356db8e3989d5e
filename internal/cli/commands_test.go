package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizbank/internal/ui/browse"
)

const bankFixture = `{
  "questions": [
    {"id": 1, "question": "What is $1/2 + 1/4$?", "choices": ["$3/4$", "$1/2$", "$2/6$", "$1/8$"], "correctAnswer": "$3/4$", "skill": "fractions", "grade": "5", "level": "medium", "wave": 2, "points": 10, "createdAt": "2025-01-01T00:00:00.000Z"},
    {"id": 2, "question": "Solve $2x = 4$", "choices": ["1", "2", "3", "4"], "correctAnswer": "2", "skill": "algebra", "grade": 8, "level": "easy", "wave": 1, "points": 10, "createdAt": "2025-01-02T00:00:00.000Z"}
  ],
  "lastUpdated": "2025-01-02T00:00:00.000Z"
}`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TestConvertCommandRewritesFiles verifies per-field output and the summary.
func TestConvertCommandRewritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "bank.json", bankFixture)

	var out, stderr bytes.Buffer
	code := Run([]string{"convert", "--no-color", dir}, &out, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr.String())
	}
	output := out.String()
	for _, want := range []string{path + ": question 1: question", path + ": question 1: correctAnswer", "Converted 6 fields in 1 files"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output:\n%s", want, output)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `\\frac{3}{4}`) {
		t.Fatalf("expected converted file, got %s", data)
	}

	out.Reset()
	if code := Run([]string{"convert", "--no-color", path}, &out, &stderr); code != ExitOK {
		t.Fatalf("expected second run to succeed, got %d", code)
	}
	if !strings.Contains(out.String(), "no changes") || !strings.Contains(out.String(), "Converted 0 fields") {
		t.Fatalf("expected idempotent second run, got:\n%s", out.String())
	}
}

// TestConvertCommandDryRunAndFailures verifies dry runs and failed files.
func TestConvertCommandDryRunAndFailures(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "bank.json", bankFixture)
	broken := writeFixture(t, dir, "broken.json", `{"questions":`)

	var out, stderr bytes.Buffer
	code := Run([]string{"convert", "--dry-run", "--no-color", dir}, &out, &stderr)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), broken) {
		t.Fatalf("expected failure for %s, got %q", broken, stderr.String())
	}
	if !strings.Contains(out.String(), "Would convert 6 fields in 2 files") {
		t.Fatalf("unexpected summary:\n%s", out.String())
	}
	data, _ := os.ReadFile(path)
	if string(data) != bankFixture {
		t.Fatalf("expected dry run to leave the file untouched")
	}
}

// TestListCommandPlain verifies the static table and filters.
func TestListCommandPlain(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "bank.json", bankFixture)

	var out, stderr bytes.Buffer
	code := Run([]string{"list", "--ui", "plain", "--no-color", "--skill", "algebra", path}, &out, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr.String())
	}
	output := out.String()
	if !strings.Contains(output, "Questions: 1 of 2") || !strings.Contains(output, "algebra") || strings.Contains(output, "fractions") {
		t.Fatalf("unexpected list output:\n%s", output)
	}
}

// TestListCommandLive verifies the interactive browser is used on a TTY.
func TestListCommandLive(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "bank.json", bankFixture)
	origTTY, origBrowser := isTerminal, runBrowser
	t.Cleanup(func() {
		isTerminal = origTTY
		runBrowser = origBrowser
	})
	isTerminal = func(io.Writer) bool { return true }
	var got browse.Model
	runBrowser = func(model browse.Model, _ io.Writer) error {
		got = model
		return nil
	}

	var out, stderr bytes.Buffer
	if code := Run([]string{"list", path}, &out, &stderr); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr.String())
	}
	if len(got.State().All) != 2 || got.State().Source != path {
		t.Fatalf("expected browser to receive the bank, got %+v", got.State())
	}
}

// TestListAndCheckReportCorruption verifies corrupt banks fail loudly.
func TestListAndCheckReportCorruption(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.json", bankFixture)
	bad := writeFixture(t, dir, "bad.json", `{"questions":[{"id":"x"}]}`)

	var out, stderr bytes.Buffer
	if code := Run([]string{"list", "--ui", "plain", bad}, &out, &stderr); code != ExitError {
		t.Fatalf("expected list to fail, got %d", code)
	}
	out.Reset()
	stderr.Reset()
	code := Run([]string{"check", good, bad, filepath.Join(dir, "missing.json")}, &out, &stderr)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(out.String(), good+": Bank OK (2 questions)") {
		t.Fatalf("expected good bank to pass, got %q", out.String())
	}
	if !strings.Contains(stderr.String(), bad+": Validation failed") || !strings.Contains(stderr.String(), "missing.json") {
		t.Fatalf("expected failures to be reported, got %q", stderr.String())
	}
}

// TestAddCommand verifies the skill document write path.
func TestAddCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "2-ratios.json", `{"skill":"ratios","questions":[],"waves":1}`)
	args := []string{"add", "--skills-dir", dir, "--skill", "ratios", "--level", "hard",
		"--question", "Simplify 2:4", "--answer", "1:2",
		"--choice", "1:2", "--choice", "2:1", "--choice", "1:4", "--choice", "4:2"}

	var out, stderr bytes.Buffer
	if code := Run(args, &out, &stderr); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr.String())
	}
	if !strings.Contains(out.String(), "saved to "+path+" (wave 3)") {
		t.Fatalf("unexpected output %q", out.String())
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"answer": "1:2"`) || !strings.Contains(string(data), `"waves": 3`) {
		t.Fatalf("expected entry in skill document:\n%s", data)
	}

	stderr.Reset()
	missing := append([]string{}, args...)
	missing[4] = "unknown"
	if code := Run(missing, &out, &stderr); code != ExitError || !strings.Contains(stderr.String(), "Skill file not found: unknown.json") {
		t.Fatalf("expected missing skill error, got %d %q", code, stderr.String())
	}

	stderr.Reset()
	badAnswer := append([]string{}, args...)
	badAnswer[10] = "3:6"
	if code := Run(badAnswer, &out, &stderr); code != ExitError || !strings.Contains(stderr.String(), "Correct answer must be one of the provided choices") {
		t.Fatalf("expected answer validation error, got %d %q", code, stderr.String())
	}
}
