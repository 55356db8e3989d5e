package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quizbank/internal/question"
)

// Backend persists a whole question bank document.
type Backend interface {
	// Name identifies the backend in errors and logs.
	Name() string
	// Read returns the stored bank. found is false when no document exists.
	Read(ctx context.Context) (bank question.Bank, found bool, err error)
	// Write replaces the stored document.
	Write(ctx context.Context, bank question.Bank) error
	Close() error
}

// Locker is implemented by backends that can exclude writers in other
// processes for the duration of a read-modify-write.
type Locker interface {
	Lock(ctx context.Context) (unlock func() error, err error)
}

// Store is the question repository. Appends are serialized so concurrent
// submissions never lose an update.
type Store struct {
	mu      sync.Mutex
	backend Backend
	nowFn   func() time.Time
}

// New wraps a backend. A nil now defaults to time.Now.
func New(backend Backend, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{backend: backend, nowFn: now}
}

// Load returns the current bank. A missing document yields an empty bank;
// a malformed one yields a *CorruptError.
func (s *Store) Load(ctx context.Context) (question.Bank, error) {
	bank, found, err := s.backend.Read(ctx)
	if err != nil {
		return question.Bank{}, err
	}
	if !found {
		return question.EmptyBank(s.nowFn()), nil
	}
	return bank, nil
}

// Init writes an empty bank when the backend holds no document yet.
func (s *Store) Init(ctx context.Context) error {
	return s.withWriteLock(ctx, func() error {
		_, found, err := s.backend.Read(ctx)
		if err != nil || found {
			return err
		}
		return s.backend.Write(ctx, question.EmptyBank(s.nowFn()))
	})
}

// Append assigns an id to q, appends it, refreshes lastUpdated, and writes
// the whole bank back. It returns the stored record and the new total.
// A corrupt document is never overwritten.
func (s *Store) Append(ctx context.Context, q question.Question) (question.Question, int, error) {
	var stored question.Question
	var total int
	err := s.withWriteLock(ctx, func() error {
		bank, err := s.Load(ctx)
		if err != nil {
			return err
		}
		now := s.nowFn()
		q.ID = question.NextID(bank.LastID(), now)
		if q.CreatedAt.IsZero() {
			q.CreatedAt = question.Timestamp(now)
		}
		questions := make([]question.Question, 0, len(bank.Questions)+1)
		questions = append(questions, bank.Questions...)
		questions = append(questions, q)
		next := question.Bank{Questions: questions, LastUpdated: question.Timestamp(now)}
		if err := s.backend.Write(ctx, next); err != nil {
			return err
		}
		stored = q
		total = len(questions)
		return nil
	})
	if err != nil {
		return question.Question{}, 0, err
	}
	return stored, total, nil
}

// Replace writes bank as the whole document. Unless overwrite is set, a
// backend that already holds a document, corrupt or not, is left alone and
// ErrBankExists is returned.
func (s *Store) Replace(ctx context.Context, bank question.Bank, overwrite bool) error {
	return s.withWriteLock(ctx, func() error {
		if !overwrite {
			_, found, err := s.backend.Read(ctx)
			if err != nil && !IsCorrupt(err) {
				return err
			}
			if found || err != nil {
				return fmt.Errorf("%w: %s", ErrBankExists, s.backend.Name())
			}
		}
		return s.backend.Write(ctx, bank)
	})
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) withWriteLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if locker, ok := s.backend.(Locker); ok {
		unlock, err := locker.Lock(ctx)
		if err != nil {
			return &WriteError{Source: s.backend.Name(), Err: err}
		}
		defer func() {
			_ = unlock()
		}()
	}
	if err := ctx.Err(); err != nil {
		return &WriteError{Source: s.backend.Name(), Err: err}
	}
	return fn()
}
