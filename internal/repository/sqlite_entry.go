package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dax233/brainhole/internal/domain"
)

// SQLiteEntryRepo implements EntryRepo and EntryWriter over a SQLite
// database.
type SQLiteEntryRepo struct {
	db *sql.DB
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(db *sql.DB) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: db}
}

func (r *SQLiteEntryRepo) FetchRandom(ctx context.Context, table string) (domain.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY RANDOM() LIMIT 1`, table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetching random entry from %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("fetching random entry from %s: %w", table, err)
		}
		return nil, domain.ErrNoEntry
	}

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	return scanRecord(rows, columns)
}

func (r *SQLiteEntryRepo) Search(ctx context.Context, table, column, term string) ([]domain.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if err := checkColumn(column); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = ?`, table, column)
	rows, err := r.db.QueryContext(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("searching %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows, columns)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return records, nil
}

func (r *SQLiteEntryRepo) DistinctColumn(ctx context.Context, table, column string) ([]string, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if err := checkColumn(column); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL AND %s != ''`, column, table, column, column)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reading distinct %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning distinct value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating distinct values: %w", err)
	}
	return values, nil
}

func (r *SQLiteEntryRepo) InsertRecords(ctx context.Context, table string, columns []string, records [][]string) (int, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	for _, col := range columns {
		if err := checkColumn(col); err != nil {
			return 0, err
		}
	}
	if len(records) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(columns, ", "), placeholders)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning insert transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("preparing insert into %s: %w", table, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		if len(rec) != len(columns) {
			return 0, fmt.Errorf("row has %d values, want %d", len(rec), len(columns))
		}
		args := make([]any, len(rec))
		for i, v := range rec {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("inserting into %s: %w", table, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing insert into %s: %w", table, err)
	}
	committed = true
	return inserted, nil
}
