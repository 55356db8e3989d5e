package browse

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quizbank/internal/question"
)

func sampleState() State {
	mk := func(id int64, text, skill, level string) question.Question {
		return question.Question{
			ID:            id,
			Question:      text,
			Choices:       []string{"1", "2", "3", "4"},
			CorrectAnswer: "3",
			Skill:         skill,
			Grade:         "6",
			Level:         level,
			Wave:          question.WaveForLevel(level),
		}
	}
	return State{
		Source:      "data/questions.json",
		LastUpdated: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
		All: []question.Question{
			mk(101, "What is 1 + 2?", "addition", question.LevelEasy),
			mk(102, "Simplify $\\frac{6}{8}$", "fractions", question.LevelMedium),
			mk(103, "Solve $x^2 = 9$", "algebra", question.LevelExpert),
			mk(104, "Odd one", "misc", "legendary"),
		},
	}
}

// TestRenderPlain verifies the static rendering lists every question.
func TestRenderPlain(t *testing.T) {
	out := Render(sampleState(), true)
	for _, want := range []string{"Bank data/questions.json", "Questions: 4", "101", "fractions", "expert (w4)", "other: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

// TestFormatLevelFallsBackToWave verifies records without a level show the
// level their wave implies.
func TestFormatLevelFallsBackToWave(t *testing.T) {
	q := question.Question{Wave: 3}
	if got := formatLevel(q, true); got != "hard (w3)" {
		t.Fatalf("expected %q, got %q", "hard (w3)", got)
	}
}

// TestCycleLevel verifies the filter wraps back to all levels.
func TestCycleLevel(t *testing.T) {
	state := sampleState()
	var seen []string
	for i := 0; i < 5; i++ {
		state = CycleLevel(state)
		seen = append(seen, state.Filter.Level)
	}
	if strings.Join(seen, ",") != "easy,medium,hard,expert," {
		t.Fatalf("unexpected cycle: %v", seen)
	}
}

// TestModelKeys verifies filtering, navigation, and quitting.
func TestModelKeys(t *testing.T) {
	m := NewModel(sampleState(), Options{NoColor: true})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	if m.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", m.Cursor())
	}
	if !strings.Contains(m.View(), "A) 1  B) 2  C) 3 *  D) 4") {
		t.Fatalf("expected detail view for selected question:\n%s", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m = next.(Model)
	if m.State().Filter.Level != question.LevelEasy || len(m.State().Visible()) != 1 || m.Cursor() != 0 {
		t.Fatalf("expected easy filter, got %+v", m.State().Filter)
	}
	if !strings.Contains(m.View(), "Questions: 1 of 4") {
		t.Fatalf("expected filtered summary:\n%s", m.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}
