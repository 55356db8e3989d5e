package browse

import (
	"time"

	"quizbank/internal/question"
)

// State is the data the browser renders.
type State struct {
	Source      string
	LastUpdated time.Time
	All         []question.Question
	Filter      question.Filter
}

// Visible returns the questions matching the current filter.
func (s State) Visible() []question.Question {
	return s.Filter.Apply(s.All)
}

// LevelCounts tallies visible questions per level. Levels outside the known
// set are counted under "other".
func (s State) LevelCounts() map[string]int {
	counts := map[string]int{}
	for _, q := range s.Visible() {
		level := q.Level
		if question.WaveForLevel(level) == question.DefaultWave && level != question.LevelEasy {
			level = "other"
		}
		counts[level]++
	}
	return counts
}

// CycleLevel advances the level filter through all, easy, medium, hard,
// expert, and back to all.
func CycleLevel(s State) State {
	levels := question.Levels()
	if s.Filter.Level == "" {
		s.Filter.Level = levels[0]
		return s
	}
	for i, level := range levels {
		if level == s.Filter.Level {
			if i+1 < len(levels) {
				s.Filter.Level = levels[i+1]
			} else {
				s.Filter.Level = ""
			}
			return s
		}
	}
	s.Filter.Level = ""
	return s
}
