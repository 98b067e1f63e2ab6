package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dax233/brainhole/internal/domain"
)

// SQLiteImportLogRepo implements ImportLogRepo using a SQLite database.
type SQLiteImportLogRepo struct {
	db *sql.DB
}

// NewSQLiteImportLogRepo creates a new SQLiteImportLogRepo.
func NewSQLiteImportLogRepo(db *sql.DB) *SQLiteImportLogRepo {
	return &SQLiteImportLogRepo{db: db}
}

func (r *SQLiteImportLogRepo) LastHash(ctx context.Context, fileID string) (string, error) {
	query := `SELECT file_hash FROM imported_files_log WHERE file_identifier = ?`
	var hash string
	err := r.db.QueryRowContext(ctx, query, fileID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading import log for %s: %w", fileID, err)
	}
	return hash, nil
}

func (r *SQLiteImportLogRepo) Upsert(ctx context.Context, log *domain.ImportLog) error {
	query := `INSERT INTO imported_files_log (file_identifier, file_hash, status, lexicon_name, batch_id, last_imported_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(file_identifier) DO UPDATE SET
			file_hash = excluded.file_hash,
			status = excluded.status,
			lexicon_name = excluded.lexicon_name,
			batch_id = excluded.batch_id,
			last_imported_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, query,
		log.FileID,
		log.FileHash,
		log.Status,
		log.LexiconName,
		log.BatchID,
	)
	if err != nil {
		return fmt.Errorf("upserting import log for %s: %w", log.FileID, err)
	}
	return nil
}
