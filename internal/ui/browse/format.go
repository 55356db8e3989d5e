package browse

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizbank/internal/question"
)

const textLimit = 60

// formatText collapses whitespace and truncates long question text.
func formatText(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

func fmtInt(value int) string {
	return strconv.Itoa(value)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

var levelColors = map[string]lipgloss.Color{
	question.LevelEasy:   lipgloss.Color("42"),
	question.LevelMedium: lipgloss.Color("214"),
	question.LevelHard:   lipgloss.Color("202"),
	question.LevelExpert: lipgloss.Color("196"),
}

// formatLevel renders a level with its wave, colored by difficulty.
func formatLevel(q question.Question, noColor bool) string {
	level := q.Level
	if level == "" {
		// Records copied from skill documents carry only a wave.
		level = question.LevelForWave(q.Wave)
	}
	text := level + " (w" + fmtInt(q.Wave) + ")"
	color, ok := levelColors[level]
	if !ok {
		return text
	}
	return stylize(text, noColor, color)
}

// formatChoices renders the answer choices, marking the correct one.
func formatChoices(q question.Question, noColor bool) string {
	parts := make([]string, 0, len(q.Choices))
	for i, choice := range q.Choices {
		label := string(rune('A'+i)) + ") " + choice
		if choice == q.CorrectAnswer {
			label = stylize(label+" *", noColor, lipgloss.Color("42"))
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}
