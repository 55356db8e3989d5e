package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quizbank/internal/question"
	"quizbank/internal/store"
	"quizbank/internal/ui/browse"
)

// runBrowser runs the interactive browser. Tests replace it.
var runBrowser = func(model browse.Model, stdout io.Writer) error {
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithInput(os.Stdin), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// runList builds the handler for the list command.
func runList(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		skill := flags.String("skill", "", "Only show questions for this skill")
		level := flags.String("level", "", "Only show questions at this level")
		grade := flags.String("grade", "", "Only show questions for this grade")
		uiMode := flags.String("ui", uiAuto, "Output mode: auto|live|plain")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() != 1 {
			fmt.Fprintln(stderr, "exactly one bank file is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		output, err := resolveOutput(*uiMode, *noColor, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if output.warning != "" {
			fmt.Fprintln(stderr, output.warning)
		}

		ctx, stop := commandContext()
		defer stop()
		path := flags.Arg(0)
		bank, err := loadBank(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "List failed:\n%v\n", err)
			return ExitError
		}

		state := browse.State{
			Source:      path,
			LastUpdated: bank.LastUpdated,
			All:         bank.Questions,
			Filter:      question.Filter{Skill: *skill, Level: *level, Grade: *grade},
		}
		plain := !output.color
		if output.live {
			if err := runBrowser(browse.NewModel(state, browse.Options{NoColor: plain}), stdout); err != nil {
				fmt.Fprintf(stderr, "List failed:\n%v\n", err)
				return ExitError
			}
			return ExitOK
		}
		fmt.Fprintln(stdout, browse.Render(state, plain))
		return ExitOK
	}
}

// loadBank reads a bank file without creating it.
func loadBank(ctx context.Context, path string) (question.Bank, error) {
	if _, err := os.Stat(path); err != nil {
		return question.Bank{}, err
	}
	backend, err := store.NewFileBackend(path)
	if err != nil {
		return question.Bank{}, err
	}
	return store.New(backend, time.Now).Load(ctx)
}
