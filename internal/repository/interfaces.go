package repository

import (
	"context"

	"github.com/dax233/brainhole/internal/domain"
)

// EntryRepo is the read side of the entry store: random fetch and
// exact-match search over named lexicon tables. Implementations must be
// safe for concurrent use; the dispatcher calls them from any number of
// simultaneously handled messages.
type EntryRepo interface {
	// FetchRandom returns one random row from the table, or
	// domain.ErrNoEntry when the table is empty.
	FetchRandom(ctx context.Context, table string) (domain.Record, error)

	// Search returns all rows whose column exactly equals term.
	Search(ctx context.Context, table, column, term string) ([]domain.Record, error)

	// DistinctColumn returns the non-empty values of a single column.
	// The word generator uses it to build its character pool.
	DistinctColumn(ctx context.Context, table, column string) ([]string, error)
}

// EntryWriter is the import-pipeline side of the entry store.
type EntryWriter interface {
	// InsertRecords appends rows to the table. Each row holds values
	// positionally matching columns. Returns the number inserted.
	InsertRecords(ctx context.Context, table string, columns []string, rows [][]string) (int, error)
}

// ImportLogRepo tracks which data files have been imported, keyed by a
// stable file identifier with a content hash for change detection.
type ImportLogRepo interface {
	// LastHash returns the recorded content hash for the file, or ""
	// when the file has never been imported.
	LastHash(ctx context.Context, fileID string) (string, error)

	Upsert(ctx context.Context, log *domain.ImportLog) error
}

// GeneratedWordRepo persists word-generation audit results.
type GeneratedWordRepo interface {
	// Existing returns the subset of combinations already logged.
	Existing(ctx context.Context, combinations []string) ([]string, error)

	// BatchInsert logs a batch of checked combinations, ignoring
	// duplicates.
	BatchInsert(ctx context.Context, words []domain.GeneratedWord) error
}
