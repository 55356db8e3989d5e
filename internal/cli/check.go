package cli

import (
	"fmt"
	"io"
)

// runCheck builds the handler for the check command.
func runCheck(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) == 0 {
			fmt.Fprintln(stderr, "at least one bank file is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ctx, stop := commandContext()
		defer stop()
		exit := ExitOK
		for _, path := range args {
			bank, err := loadBank(ctx, path)
			if err != nil {
				fmt.Fprintf(stderr, "%s: Validation failed:\n%v\n", path, err)
				exit = ExitError
				continue
			}
			fmt.Fprintf(stdout, "%s: Bank OK (%d questions)\n", path, bank.Total())
		}
		return exit
	}
}
