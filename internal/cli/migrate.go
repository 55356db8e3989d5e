package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"quizbank/internal/store"
)

// runMigrate builds the handler for the migrate command.
func runMigrate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		target := flags.String("to", "", "Destination: duckdb:<path>, redis:<addr>, or a JSON file path")
		redisKey := flags.String("redis-key", store.DefaultRedisKey, "Redis key for redis destinations")
		force := flags.Bool("force", false, "Overwrite an existing destination bank")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if *target == "" || flags.NArg() != 1 {
			fmt.Fprintln(stderr, "--to and exactly one source bank are required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ctx, stop := commandContext()
		defer stop()
		source := flags.Arg(0)
		bank, err := loadBank(ctx, source)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", source, err)
			return ExitError
		}
		backend, err := store.OpenTarget(ctx, *target, *redisKey)
		if err != nil {
			fmt.Fprintf(stderr, "open %s: %v\n", *target, err)
			return ExitError
		}
		dest := store.New(backend, time.Now)
		defer func() {
			_ = dest.Close()
		}()
		if err := dest.Replace(ctx, bank, *force); err != nil {
			if errors.Is(err, store.ErrBankExists) {
				fmt.Fprintf(stderr, "%v (use --force to overwrite)\n", err)
				return ExitError
			}
			fmt.Fprintf(stderr, "migrate: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Migrated %d questions to %s\n", len(bank.Questions), backend.Name())
		return ExitOK
	}
}
