//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"strings"

	"quizbank/internal/cli"
)

// iRunCommand executes a CLI command for the scenario. The {dir} and
// {bank} placeholders expand to the scenario's fixture paths.
func (s *featureState) iRunCommand(command string) error {
	command = strings.NewReplacer("{dir}", s.dir, "{bank}", s.bankPath).Replace(command)
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "quizbank" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}
