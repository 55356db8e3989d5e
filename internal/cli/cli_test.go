package cli

import (
	"bytes"
	"strings"
	"testing"
)

func run(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// TestUsageListsCommands verifies help and a bare invocation both print the
// command table, with different exit codes.
func TestUsageListsCommands(t *testing.T) {
	for _, tc := range []struct {
		args []string
		code int
	}{
		{args: []string{"--help"}, code: ExitOK},
		{args: []string{"help"}, code: ExitOK},
		{args: nil, code: ExitUsage},
	} {
		code, stdout, stderr := run(tc.args...)
		if code != tc.code {
			t.Fatalf("%v: expected exit %d, got %d", tc.args, tc.code, code)
		}
		if stderr != "" {
			t.Fatalf("%v: expected no stderr output, got %q", tc.args, stderr)
		}
		if !strings.Contains(stdout, "quizbank <command> [options]") {
			t.Fatalf("%v: expected usage header, got %q", tc.args, stdout)
		}
		for _, cmd := range commands {
			if !strings.Contains(stdout, "  "+cmd.Name+" ") {
				t.Fatalf("%v: expected command %q in usage", tc.args, cmd.Name)
			}
		}
	}
}

// TestUnknownCommandGoesToStderr verifies an unknown command is a usage error.
func TestUnknownCommandGoesToStderr(t *testing.T) {
	code, stdout, stderr := run("import", "bank.json")
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if stdout != "" {
		t.Fatalf("expected no stdout output, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "Unknown command: import") || !strings.Contains(stderr, "Commands:") {
		t.Fatalf("expected unknown command error with usage, got %q", stderr)
	}
}

// TestCommandHelpPrintsUsageLines verifies -h and --help anywhere in the
// arguments show the command's own usage.
func TestCommandHelpPrintsUsageLines(t *testing.T) {
	for _, cmd := range commands {
		for _, args := range [][]string{{cmd.Name, "--help"}, {cmd.Name, "extra", "-h"}} {
			code, stdout, stderr := run(args...)
			if code != ExitOK || stderr != "" {
				t.Fatalf("%v: expected clean exit, got %d (%q)", args, code, stderr)
			}
			for _, line := range cmd.Usage {
				if !strings.Contains(stdout, line) {
					t.Fatalf("%v: expected usage line %q in %q", args, line, stdout)
				}
			}
		}
	}
}

// TestMissingArgumentsAreUsageErrors verifies commands reject empty input.
func TestMissingArgumentsAreUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"convert"},
		{"list"},
		{"check"},
		{"migrate", "a.json"},
		{"add", "--skill", "x"},
		{"list", "--bogus", "a.json"},
		{"list", "--ui", "fancy", "a.json"},
	} {
		if code, _, stderr := run(args...); code != ExitUsage {
			t.Fatalf("%v: expected exit %d, got %d (%s)", args, ExitUsage, code, stderr)
		}
	}
}
