package store

import (
	"errors"
	"fmt"
)

// ErrSkillNotFound reports that no document exists for a skill.
var ErrSkillNotFound = errors.New("skill file not found")

// ErrBankExists reports a migration target that already holds a bank.
var ErrBankExists = errors.New("bank already exists")

// ErrInvalidSkill reports a skill identifier that cannot name a file.
var ErrInvalidSkill = errors.New("invalid skill identifier")

// ReadError reports an I/O failure while reading a stored document.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError reports a failure while persisting a document.
type WriteError struct {
	Source string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Source, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// CorruptError reports a stored document that exists but cannot be parsed
// or does not match the bank schema. It is distinct from an empty store.
type CorruptError struct {
	Source string
	Err    error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt %s: %v", e.Source, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// IsCorrupt reports whether err wraps a *CorruptError.
func IsCorrupt(err error) bool {
	var corrupt *CorruptError
	return errors.As(err, &corrupt)
}
