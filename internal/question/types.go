package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultPoints is the score assigned to every newly created question.
const DefaultPoints = 10

// ChoiceCount is the number of answer choices a question must carry.
const ChoiceCount = 4

// Question is a persisted multiple-choice question record.
type Question struct {
	ID            int64     `json:"id"`
	Question      string    `json:"question"`
	Choices       []string  `json:"choices"`
	CorrectAnswer string    `json:"correctAnswer"`
	Skill         string    `json:"skill"`
	Grade         Label     `json:"grade"`
	Level         string    `json:"level"`
	Wave          int       `json:"wave"`
	Points        int       `json:"points"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Bank is the full ordered set of questions plus its last write time.
type Bank struct {
	Questions   []Question `json:"questions"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// EmptyBank returns a bank with no questions stamped at now.
func EmptyBank(now time.Time) Bank {
	return Bank{Questions: []Question{}, LastUpdated: Timestamp(now)}
}

// Total returns the number of questions in the bank.
func (b Bank) Total() int {
	return len(b.Questions)
}

// LastID returns the largest id in the bank, or zero for an empty bank.
func (b Bank) LastID() int64 {
	var last int64
	for _, q := range b.Questions {
		if q.ID > last {
			last = q.ID
		}
	}
	return last
}

// Filter selects questions by exact skill, level, and grade match.
// Empty fields match everything.
type Filter struct {
	Skill string
	Level string
	Grade string
}

// Match reports whether q satisfies the filter.
func (f Filter) Match(q Question) bool {
	if f.Skill != "" && q.Skill != f.Skill {
		return false
	}
	if f.Level != "" && q.Level != f.Level {
		return false
	}
	if f.Grade != "" && string(q.Grade) != f.Grade {
		return false
	}
	return true
}

// Apply returns the questions matching the filter in bank order.
func (f Filter) Apply(questions []Question) []Question {
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if f.Match(q) {
			out = append(out, q)
		}
	}
	return out
}

// Label is an opaque text label that also accepts JSON numbers, so a grade
// sent as 8 or "8" is stored the same way.
type Label string

// UnmarshalJSON accepts a JSON string or number.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label must be a string or number: %w", err)
	}
	*l = Label(n.String())
	return nil
}

// Timestamp normalizes a time to UTC with millisecond precision.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// NextID returns an id derived from now that is strictly greater than last.
func NextID(last int64, now time.Time) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}
