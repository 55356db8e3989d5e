package latex

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quizbank/internal/fsutil"
	"quizbank/internal/jsondoc"
)

// Change identifies one field rewritten by the converter.
type Change struct {
	Question int    // zero-based index into questions
	Field    string // "question", "choices[2]", "answer", or "correctAnswer"
}

// String renders the change for reports.
func (c Change) String() string {
	return fmt.Sprintf("question %d: %s", c.Question+1, c.Field)
}

// Result lists the fields changed in one document.
type Result struct {
	Changes []Change
}

// Count returns the number of changed fields.
func (r Result) Count() int {
	return len(r.Changes)
}

var answerFields = []string{"answer", "correctAnswer"}

// ConvertDocument rewrites fractions in the question text, each choice, and
// the answer of every entry in the document's questions array. Unchanged
// fields are not counted. When nothing changed the input bytes are returned
// as is.
func ConvertDocument(data []byte) ([]byte, Result, error) {
	doc, err := jsondoc.Parse(data)
	if err != nil {
		return nil, Result{}, fmt.Errorf("parse document: %w", err)
	}
	if doc.Kind != jsondoc.ObjectKind {
		return nil, Result{}, errors.New("parse document: top-level value must be an object")
	}
	questions, ok := doc.Object.Get("questions")
	if !ok || questions.Kind != jsondoc.Array {
		return data, Result{}, nil
	}

	var result Result
	for index, item := range questions.Array {
		if item.Kind != jsondoc.ObjectKind {
			continue
		}
		convertStringField(item.Object, "question", index, &result)
		if choices, ok := item.Object.Get("choices"); ok && choices.Kind == jsondoc.Array {
			for ci, choice := range choices.Array {
				text, ok := choice.AsString()
				if !ok {
					continue
				}
				if converted := ConvertFractions(text); converted != text {
					choices.Array[ci] = jsondoc.StringValue(converted)
					result.Changes = append(result.Changes, Change{Question: index, Field: fmt.Sprintf("choices[%d]", ci)})
				}
			}
		}
		for _, field := range answerFields {
			convertStringField(item.Object, field, index, &result)
		}
	}
	if result.Count() == 0 {
		return data, result, nil
	}
	out, err := jsondoc.Encode(doc)
	if err != nil {
		return nil, Result{}, fmt.Errorf("encode document: %w", err)
	}
	return out, result, nil
}

func convertStringField(obj *jsondoc.Object, field string, index int, result *Result) {
	value, ok := obj.Get(field)
	if !ok {
		return
	}
	text, ok := value.AsString()
	if !ok {
		return
	}
	converted := ConvertFractions(text)
	if converted == text {
		return
	}
	obj.Set(field, jsondoc.StringValue(converted))
	result.Changes = append(result.Changes, Change{Question: index, Field: field})
}

// Options controls file conversion.
type Options struct {
	// DryRun reports changes without writing files.
	DryRun bool
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	Changes []Change
	Written bool
	Err     error
}

// Summary aggregates a batch conversion.
type Summary struct {
	Files []FileResult
}

// TotalChanges sums changed fields across files.
func (s Summary) TotalChanges() int {
	total := 0
	for _, f := range s.Files {
		total += len(f.Changes)
	}
	return total
}

// Failed returns the files that could not be processed.
func (s Summary) Failed() []FileResult {
	var failed []FileResult
	for _, f := range s.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// ConvertFile converts one JSON document in place. The file is rewritten
// only when at least one field changed. The document lock is held while
// reading and writing so the converter cannot interleave with a store writer.
func ConvertFile(ctx context.Context, path string, opts Options) FileResult {
	result := FileResult{Path: path}
	lock, err := fsutil.LockFile(ctx, path)
	if err != nil {
		result.Err = fmt.Errorf("lock %s: %w", path, err)
		return result
	}
	defer func() {
		_ = lock.Unlock()
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", path, err)
		return result
	}
	out, converted, err := ConvertDocument(data)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return result
	}
	result.Changes = converted.Changes
	if converted.Count() == 0 || opts.DryRun {
		return result
	}
	if err := fsutil.WriteFileAtomic(path, out); err != nil {
		result.Err = fmt.Errorf("write %s: %w", path, err)
		return result
	}
	result.Written = true
	return result
}

// ConvertPath converts a single file or every *.json file below a directory.
// Per-file failures are recorded in the summary; the returned error is
// reserved for a root that cannot be read or a cancelled context.
func ConvertPath(ctx context.Context, root string, opts Options) (Summary, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Summary{}, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return Summary{Files: []FileResult{ConvertFile(ctx, root, opts)}}, ctx.Err()
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(paths)

	var summary Summary
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Files = append(summary.Files, ConvertFile(ctx, path, opts))
	}
	return summary, nil
}
