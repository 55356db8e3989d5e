package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"quizbank/internal/question"
)

//go:embed duckdb_schema.sql
var duckdbSchemaDDL string

// DuckDBBackend stores one row per question plus a metadata row holding
// lastUpdated. Writes replace the table contents in one transaction.
type DuckDBBackend struct {
	db   *sql.DB
	name string
}

// OpenDuckDB opens the database at dsn (":memory:" for an in-process
// database) and applies the schema.
func OpenDuckDB(ctx context.Context, dsn string) (*DuckDBBackend, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if _, err := db.ExecContext(ctx, duckdbSchemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply duckdb schema: %w", err)
	}
	return &DuckDBBackend{db: db, name: "duckdb " + dsn}, nil
}

// Name identifies the backend.
func (b *DuckDBBackend) Name() string {
	return b.name
}

// Read loads the bank. No metadata row means no document.
func (b *DuckDBBackend) Read(ctx context.Context) (question.Bank, bool, error) {
	var lastUpdated string
	err := b.db.QueryRowContext(ctx, `SELECT last_updated FROM bank_meta WHERE id = 1`).Scan(&lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return question.Bank{}, false, nil
	}
	if err != nil {
		return question.Bank{}, false, &ReadError{Source: b.name, Err: err}
	}
	updated, err := time.Parse(time.RFC3339Nano, lastUpdated)
	if err != nil {
		return question.Bank{}, true, &CorruptError{Source: b.name, Err: fmt.Errorf("last_updated: %w", err)}
	}

	rows, err := b.db.QueryContext(ctx, `
SELECT id, question, choices, correct_answer, skill, grade, level, wave, points, created_at
FROM questions
ORDER BY position`)
	if err != nil {
		return question.Bank{}, true, &ReadError{Source: b.name, Err: err}
	}
	defer rows.Close()

	bank := question.Bank{Questions: []question.Question{}, LastUpdated: updated}
	for rows.Next() {
		var q question.Question
		var choices, grade, createdAt string
		if err := rows.Scan(&q.ID, &q.Question, &choices, &q.CorrectAnswer, &q.Skill, &grade, &q.Level, &q.Wave, &q.Points, &createdAt); err != nil {
			return question.Bank{}, true, &ReadError{Source: b.name, Err: err}
		}
		if err := json.Unmarshal([]byte(choices), &q.Choices); err != nil {
			return question.Bank{}, true, &CorruptError{Source: b.name, Err: fmt.Errorf("question %d choices: %w", q.ID, err)}
		}
		created, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return question.Bank{}, true, &CorruptError{Source: b.name, Err: fmt.Errorf("question %d created_at: %w", q.ID, err)}
		}
		q.Grade = question.Label(grade)
		q.CreatedAt = created
		bank.Questions = append(bank.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return question.Bank{}, true, &ReadError{Source: b.name, Err: err}
	}
	return bank, true, nil
}

// Write replaces all rows with the bank contents.
func (b *DuckDBBackend) Write(ctx context.Context, bank question.Bank) error {
	if err := b.write(ctx, bank); err != nil {
		return &WriteError{Source: b.name, Err: err}
	}
	return nil
}

func (b *DuckDBBackend) write(ctx context.Context, bank question.Bank) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return err
	}
	for position, q := range bank.Questions {
		choices, err := json.Marshal(q.Choices)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO questions (position, id, question, choices, correct_answer, skill, grade, level, wave, points, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			position, q.ID, q.Question, string(choices), q.CorrectAnswer, q.Skill, string(q.Grade), q.Level, q.Wave, q.Points,
			q.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bank_meta`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO bank_meta (id, last_updated) VALUES (1, ?)`,
		bank.LastUpdated.UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the database.
func (b *DuckDBBackend) Close() error {
	return b.db.Close()
}
