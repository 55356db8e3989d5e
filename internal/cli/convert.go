package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"quizbank/internal/latex"
)

var (
	changeColor  = lipgloss.Color("42")
	failureColor = lipgloss.Color("196")
	summaryColor = lipgloss.Color("33")
	mutedColor   = lipgloss.Color("244")
)

// runConvert builds the handler for the convert command.
func runConvert(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		noColor := flags.Bool("no-color", false, "Disable colored output")
		dryRun := flags.Bool("dry-run", false, "Report changes without writing files")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() == 0 {
			fmt.Fprintln(stderr, "at least one file or directory is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ctx, stop := commandContext()
		defer stop()
		output, err := resolveOutput(uiPlain, *noColor, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		plain := !output.color
		opts := latex.Options{DryRun: *dryRun}

		exit := ExitOK
		changed, files := 0, 0
		for _, root := range flags.Args() {
			summary, err := latex.ConvertPath(ctx, root, opts)
			if err != nil {
				fmt.Fprintln(stderr, stylize(fmt.Sprintf("%s: %v", root, err), plain, failureColor))
				exit = ExitError
			}
			for _, file := range summary.Files {
				files++
				if file.Err != nil {
					fmt.Fprintln(stderr, stylize(fmt.Sprintf("%s: %v", file.Path, file.Err), plain, failureColor))
					exit = ExitError
					continue
				}
				changed += len(file.Changes)
				for _, change := range file.Changes {
					fmt.Fprintf(stdout, "%s: %s\n", file.Path, stylize(change.String(), plain, changeColor))
				}
				if len(file.Changes) == 0 {
					fmt.Fprintln(stdout, stylize(file.Path+": no changes", plain, mutedColor))
				}
			}
		}

		verb := "Converted"
		if *dryRun {
			verb = "Would convert"
		}
		fmt.Fprintln(stdout, stylize(fmt.Sprintf("%s %d fields in %d files", verb, changed, files), plain, summaryColor))
		return exit
	}
}

// stylize applies optional color styling.
func stylize(text string, plain bool, color lipgloss.Color) string {
	if plain {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
