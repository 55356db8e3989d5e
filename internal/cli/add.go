package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"quizbank/internal/question"
	"quizbank/internal/store"
)

// runAdd builds the handler for the add command.
func runAdd(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		skillsDir := flags.String("skills-dir", "", "Directory holding <skill>.json documents")
		skill := flags.String("skill", "", "Skill identifier")
		level := flags.String("level", "", "Difficulty level: easy|medium|hard|expert")
		text := flags.String("question", "", "Question text")
		answer := flags.String("answer", "", "Correct answer, must equal one choice")
		var choices stringList
		flags.Var(&choices, "choice", "Answer choice (repeat 4 times)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		var missing []string
		for name, value := range map[string]string{"skills-dir": *skillsDir, "skill": *skill, "level": *level, "question": *text, "answer": *answer} {
			if strings.TrimSpace(value) == "" {
				missing = append(missing, "--"+name)
			}
		}
		if len(missing) > 0 {
			fmt.Fprintf(stderr, "missing required flags: %s\n", strings.Join(sortedStrings(missing), ", "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if err := question.CheckChoices(choices, *answer); err != nil {
			fmt.Fprintf(stderr, "Add failed:\n%v\n", err)
			return ExitError
		}

		skills, err := store.NewSkillStore(*skillsDir)
		if err != nil {
			fmt.Fprintf(stderr, "Add failed:\n%v\n", err)
			return ExitError
		}
		ctx, stop := commandContext()
		defer stop()
		now := time.Now()
		entry, path, err := skills.Append(ctx, *skill, question.Question{
			ID:            question.NextID(0, now),
			Question:      *text,
			Choices:       choices,
			CorrectAnswer: *answer,
			Skill:         *skill,
			Level:         *level,
			Wave:          question.WaveForLevel(*level),
			Points:        question.DefaultPoints,
			CreatedAt:     question.Timestamp(now),
		})
		if err != nil {
			if errors.Is(err, store.ErrSkillNotFound) {
				fmt.Fprintf(stderr, "Skill file not found: %s.json\n", *skill)
				return ExitError
			}
			fmt.Fprintf(stderr, "Add failed:\n%v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Question %d saved to %s (wave %d)\n", entry.ID, path, entry.Wave)
		return ExitOK
	}
}

func sortedStrings(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
