package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"quizbank/internal/fsutil"
	"quizbank/internal/jsondoc"
	"quizbank/internal/question"
)

// SkillEntry is the record appended to a skill document.
type SkillEntry struct {
	ID       int64    `json:"id"`
	Wave     int      `json:"wave"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
	Points   int      `json:"points"`
}

// SkillStore appends questions to per-skill JSON documents in one directory.
type SkillStore struct {
	mu  sync.Mutex
	dir string
}

// NewSkillStore returns a store rooted at dir.
func NewSkillStore(dir string) (*SkillStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("skills directory is required")
	}
	return &SkillStore{dir: dir}, nil
}

// Dir returns the skills directory.
func (s *SkillStore) Dir() string {
	return s.dir
}

// Resolve returns the document path for skill. It prefers <skill>.json and
// falls back to a numbered <n>-<skill>.json file.
func (s *SkillStore) Resolve(skill string) (string, error) {
	if !validSkill(skill) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSkill, skill)
	}
	direct := filepath.Join(s.dir, skill+".json")
	if _, err := os.Stat(direct); err == nil {
		return direct, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", &ReadError{Source: direct, Err: err}
	}

	matches, err := filepath.Glob(filepath.Join(s.dir, "*-"+skill+".json"))
	if err != nil {
		return "", &ReadError{Source: s.dir, Err: err}
	}
	sort.Strings(matches)
	for _, match := range matches {
		prefix := strings.TrimSuffix(filepath.Base(match), "-"+skill+".json")
		if isDigits(prefix) {
			return match, nil
		}
	}
	return "", fmt.Errorf("%w: %s.json", ErrSkillNotFound, skill)
}

// Append adds q to the skill document named by skill and sets the
// document's waves count to the highest wave present. Keys the store does
// not know about are preserved in place.
func (s *SkillStore) Append(ctx context.Context, skill string, q question.Question) (SkillEntry, string, error) {
	path, err := s.Resolve(skill)
	if err != nil {
		return SkillEntry{}, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lock, err := fsutil.LockFile(ctx, path)
	if err != nil {
		return SkillEntry{}, path, &WriteError{Source: path, Err: err}
	}
	defer func() {
		_ = lock.Unlock()
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return SkillEntry{}, path, fmt.Errorf("%w: %s", ErrSkillNotFound, filepath.Base(path))
		}
		return SkillEntry{}, path, &ReadError{Source: path, Err: err}
	}
	doc, err := jsondoc.Parse(data)
	if err != nil {
		return SkillEntry{}, path, &CorruptError{Source: path, Err: err}
	}
	if doc.Kind != jsondoc.ObjectKind {
		return SkillEntry{}, path, &CorruptError{Source: path, Err: errors.New("top-level value must be an object")}
	}
	questions, ok := doc.Object.Get("questions")
	if !ok || questions.Kind == jsondoc.Null {
		questions = jsondoc.ArrayValue([]jsondoc.Value{})
	}
	if questions.Kind != jsondoc.Array {
		return SkillEntry{}, path, &CorruptError{Source: path, Err: errors.New("questions must be an array")}
	}

	entry := SkillEntry{
		ID:       q.ID,
		Wave:     question.WaveForLevel(q.Level),
		Question: q.Question,
		Choices:  append([]string(nil), q.Choices...),
		Answer:   q.CorrectAnswer,
		Points:   q.Points,
	}
	if entry.Points == 0 {
		entry.Points = question.DefaultPoints
	}
	items := append(questions.Array, entryValue(entry))
	doc.Object.Set("questions", jsondoc.ArrayValue(items))
	doc.Object.Set("waves", jsondoc.IntValue(int64(maxWave(items))))

	out, err := jsondoc.Encode(doc)
	if err != nil {
		return SkillEntry{}, path, &WriteError{Source: path, Err: err}
	}
	if err := fsutil.WriteFileAtomic(path, out); err != nil {
		return SkillEntry{}, path, &WriteError{Source: path, Err: err}
	}
	return entry, path, nil
}

func entryValue(entry SkillEntry) jsondoc.Value {
	obj := jsondoc.NewObject()
	obj.Set("id", jsondoc.IntValue(entry.ID))
	obj.Set("wave", jsondoc.IntValue(int64(entry.Wave)))
	obj.Set("question", jsondoc.StringValue(entry.Question))
	obj.Set("choices", jsondoc.StringsValue(entry.Choices))
	obj.Set("answer", jsondoc.StringValue(entry.Answer))
	obj.Set("points", jsondoc.IntValue(int64(entry.Points)))
	return jsondoc.ObjectValue(obj)
}

// maxWave returns the highest integral wave among items, or DefaultWave.
func maxWave(items []jsondoc.Value) int {
	highest := 0
	for _, item := range items {
		wave, ok := item.ObjectField("wave")
		if !ok {
			continue
		}
		if n, ok := wave.AsInt(); ok && int(n) > highest {
			highest = int(n)
		}
	}
	if highest == 0 {
		return question.DefaultWave
	}
	return highest
}

func validSkill(skill string) bool {
	if strings.TrimSpace(skill) == "" || skill == "." || skill == ".." {
		return false
	}
	return !strings.ContainsAny(skill, `/\`) && !strings.Contains(skill, "..")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
