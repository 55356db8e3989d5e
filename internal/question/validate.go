package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Rule identifies which submission check failed.
type Rule string

const (
	RuleMissingFields Rule = "missing_fields"
	RuleBadChoices    Rule = "bad_choices"
	RuleAnswerChoice  Rule = "answer_not_in_choices"
)

var ruleMessages = map[Rule]string{
	RuleMissingFields: "Missing required fields: question, choices, correctAnswer, skill, grade, level",
	RuleBadChoices:    "Choices must be an array with exactly 4 items",
	RuleAnswerChoice:  "Correct answer must be one of the provided choices",
}

// ValidationError reports the first submission rule a draft violated.
type ValidationError struct {
	Rule Rule
}

// Error returns the client-facing message for the violated rule.
func (err *ValidationError) Error() string {
	if err == nil {
		return ""
	}
	if msg, ok := ruleMessages[err.Rule]; ok {
		return msg
	}
	return fmt.Sprintf("invalid question: %s", err.Rule)
}

// Draft is a question as submitted by a client, before derived fields exist.
type Draft struct {
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correctAnswer"`
	Skill         string   `json:"skill"`
	Grade         Label    `json:"grade"`
	Level         string   `json:"level"`

	// malformedChoices marks a choices value that was present but not a
	// list of strings.
	malformedChoices bool
}

// DecodeDraft parses a submission body. A choices value that is present but
// is not a list of strings is kept as a validation failure rather than a
// decode error so the rule order is preserved.
func DecodeDraft(data []byte) (Draft, error) {
	var raw struct {
		Question      string          `json:"question"`
		Choices       json.RawMessage `json:"choices"`
		CorrectAnswer string          `json:"correctAnswer"`
		Skill         string          `json:"skill"`
		Grade         Label           `json:"grade"`
		Level         string          `json:"level"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Draft{}, fmt.Errorf("decode question draft: %w", err)
	}
	draft := Draft{
		Question:      raw.Question,
		CorrectAnswer: raw.CorrectAnswer,
		Skill:         raw.Skill,
		Grade:         raw.Grade,
		Level:         raw.Level,
	}
	choices := bytes.TrimSpace(raw.Choices)
	if len(choices) > 0 && !bytes.Equal(choices, []byte("null")) {
		var list []string
		if err := json.Unmarshal(choices, &list); err != nil {
			draft.malformedChoices = true
		} else {
			if list == nil {
				list = []string{}
			}
			draft.Choices = list
		}
	}
	return draft, nil
}

// Validate applies the submission rules in order and returns the first
// violation as a *ValidationError.
func (d Draft) Validate() error {
	if blank(d.Question) || blank(d.CorrectAnswer) || blank(d.Skill) ||
		blank(string(d.Grade)) || blank(d.Level) || (d.Choices == nil && !d.malformedChoices) {
		return &ValidationError{Rule: RuleMissingFields}
	}
	if d.malformedChoices {
		return &ValidationError{Rule: RuleBadChoices}
	}
	return CheckChoices(d.Choices, d.CorrectAnswer)
}

// CheckChoices applies the choice-count and answer-membership rules.
// Matching is exact, with no trimming or case folding.
func CheckChoices(choices []string, answer string) error {
	if len(choices) != ChoiceCount {
		return &ValidationError{Rule: RuleBadChoices}
	}
	for _, choice := range choices {
		if choice == answer {
			return nil
		}
	}
	return &ValidationError{Rule: RuleAnswerChoice}
}

// Build turns a validated draft into a question record with derived fields.
func (d Draft) Build(id int64, now time.Time) Question {
	choices := make([]string, len(d.Choices))
	copy(choices, d.Choices)
	return Question{
		ID:            id,
		Question:      d.Question,
		Choices:       choices,
		CorrectAnswer: d.CorrectAnswer,
		Skill:         d.Skill,
		Grade:         d.Grade,
		Level:         d.Level,
		Wave:          WaveForLevel(d.Level),
		Points:        DefaultPoints,
		CreatedAt:     Timestamp(now),
	}
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
