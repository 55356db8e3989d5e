//go:build cucumber
// +build cucumber

package cucumber

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const skillFile = "1-fractions.json"

// aSkillDirectoryWithQuestion writes a one-question skill document.
func (s *featureState) aSkillDirectoryWithQuestion(text string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	doc := map[string]any{
		"waves": 1,
		"questions": []map[string]any{{
			"id":       1,
			"wave":     1,
			"question": text,
			"choices":  []string{"3/4", "1/2", "2/6", "1/8"},
			"answer":   "3/4",
			"points":   10,
		}},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode skill document: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, skillFile), data, 0o644); err != nil {
		return fmt.Errorf("write skill document: %w", err)
	}
	return nil
}

// aCorruptBankFile writes a truncated bank document.
func (s *featureState) aCorruptBankFile() error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	s.bankPath = filepath.Join(s.dir, "questions.json")
	if err := os.WriteFile(s.bankPath, []byte(`{"questions": [`), 0o644); err != nil {
		return fmt.Errorf("write bank: %w", err)
	}
	return nil
}

// ensureDir creates the scenario's temp directory on first use.
func (s *featureState) ensureDir() error {
	if s.dir != "" {
		return nil
	}
	dir, err := os.MkdirTemp("", "quizbank-feature-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	s.dir = dir
	return nil
}
