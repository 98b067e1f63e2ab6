package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dax233/brainhole/internal/domain"
)

// SQLiteGeneratedWordRepo implements GeneratedWordRepo using a SQLite
// database.
type SQLiteGeneratedWordRepo struct {
	db *sql.DB
}

// NewSQLiteGeneratedWordRepo creates a new SQLiteGeneratedWordRepo.
func NewSQLiteGeneratedWordRepo(db *sql.DB) *SQLiteGeneratedWordRepo {
	return &SQLiteGeneratedWordRepo{db: db}
}

func (r *SQLiteGeneratedWordRepo) Existing(ctx context.Context, combinations []string) ([]string, error) {
	if len(combinations) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(combinations)), ", ")
	query := fmt.Sprintf(`SELECT combination FROM generated_word_log WHERE combination IN (%s)`, placeholders)

	args := make([]any, len(combinations))
	for i, c := range combinations {
		args[i] = c
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying generated word log: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning combination: %w", err)
		}
		existing = append(existing, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating generated word log: %w", err)
	}
	return existing, nil
}

func (r *SQLiteGeneratedWordRepo) BatchInsert(ctx context.Context, words []domain.GeneratedWord) error {
	if len(words) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning word log transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	query := `INSERT OR IGNORE INTO generated_word_log (combination, is_word, definition, source, checked_by_model)
		VALUES (?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing word log insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, w.Combination, w.IsWord, nullableString(w.Definition), nullableString(w.Source), w.CheckedByModel); err != nil {
			return fmt.Errorf("inserting word log entry %q: %w", w.Combination, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing word log insert: %w", err)
	}
	committed = true
	return nil
}

// nullableString maps "" to NULL so unset definitions and sources stay
// NULL in the log, as the importer of the log expects.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
