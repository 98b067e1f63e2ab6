// Package importer loads lexicon data files from disk into the entry
// store. Files are tracked by a content hash so unchanged files are
// skipped on re-import.
package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dax233/brainhole/internal/domain"
	"github.com/dax233/brainhole/internal/lexicon"
	"github.com/dax233/brainhole/internal/repository"
	"github.com/google/uuid"
)

// FileResult records the outcome for one data file.
type FileResult struct {
	Lexicon string
	File    string
	Status  string
	Rows    int
	Reason  string
}

// Result summarizes one import run.
type Result struct {
	BatchID string
	Files   []FileResult
}

// Counts returns how many files were imported, skipped, and failed.
func (r *Result) Counts() (imported, skipped, failed int) {
	for _, f := range r.Files {
		switch f.Status {
		case domain.ImportStatusSuccess:
			imported++
		case domain.ImportStatusSkipped:
			skipped++
		case domain.ImportStatusFailed:
			failed++
		}
	}
	return
}

// Service walks the configured data folders and imports each lexicon's
// files into its table.
type Service struct {
	writer   repository.EntryWriter
	log      repository.ImportLogRepo
	basePath string
}

func NewService(writer repository.EntryWriter, log repository.ImportLogRepo, basePath string) *Service {
	return &Service{writer: writer, log: log, basePath: basePath}
}

// ImportAll imports every descriptor that names a data folder. One
// failing file does not abort the run; its failure is recorded in the
// result and in the import log.
func (s *Service) ImportAll(ctx context.Context, descs []*lexicon.Descriptor) (*Result, error) {
	if s.basePath == "" {
		return nil, fmt.Errorf("no base data path configured")
	}

	result := &Result{BatchID: uuid.New().String()}
	for _, d := range descs {
		if d.Folder == "" {
			continue
		}
		files, err := s.listFiles(d)
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result.Files = append(result.Files, s.importFile(ctx, result.BatchID, d, path))
		}
	}
	return result, nil
}

// listFiles returns the lexicon's data files in a stable order. A
// missing folder is not an error; the lexicon simply has no files yet.
func (s *Service) listFiles(d *lexicon.Descriptor) ([]string, error) {
	dir := filepath.Join(s.basePath, d.Folder)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data folder %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !matchesExtension(e.Name(), d.Extensions) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (s *Service) importFile(ctx context.Context, batchID string, d *lexicon.Descriptor, path string) FileResult {
	name := filepath.Base(path)
	res := FileResult{Lexicon: d.Name, File: name}
	fileID := d.Name + "/" + name

	data, err := os.ReadFile(path)
	if err != nil {
		return s.fail(ctx, res, batchID, fileID, d.Name, err)
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	last, err := s.log.LastHash(ctx, fileID)
	if err != nil {
		return s.fail(ctx, res, batchID, fileID, d.Name, err)
	}
	if last == hash {
		res.Status = domain.ImportStatusSkipped
		return res
	}

	columns, rows, err := parseFile(name, data)
	if err != nil {
		return s.fail(ctx, res, batchID, fileID, d.Name, err)
	}
	rows, err = validRows(columns, rows, d.SearchColumn)
	if err != nil {
		return s.fail(ctx, res, batchID, fileID, d.Name, err)
	}

	n, err := s.writer.InsertRecords(ctx, d.Table, columns, rows)
	if err != nil {
		return s.fail(ctx, res, batchID, fileID, d.Name, err)
	}

	res.Status = domain.ImportStatusSuccess
	res.Rows = n
	if err := s.log.Upsert(ctx, &domain.ImportLog{
		BatchID:     batchID,
		FileID:      fileID,
		FileHash:    hash,
		Status:      domain.ImportStatusSuccess,
		LexiconName: d.Name,
	}); err != nil {
		res.Status = domain.ImportStatusFailed
		res.Reason = err.Error()
	}
	return res
}

// fail records the failure with an empty hash, so the next run retries
// the file.
func (s *Service) fail(ctx context.Context, res FileResult, batchID, fileID, lexiconName string, cause error) FileResult {
	res.Status = domain.ImportStatusFailed
	res.Reason = cause.Error()
	_ = s.log.Upsert(ctx, &domain.ImportLog{
		BatchID:     batchID,
		FileID:      fileID,
		FileHash:    "",
		Status:      domain.ImportStatusFailed,
		LexiconName: lexiconName,
	})
	return res
}

// validRows drops rows whose search column is empty; entries without a
// searchable key can never be found again. A file lacking the search
// column entirely is rejected.
func validRows(columns []string, rows [][]string, searchColumn string) ([][]string, error) {
	if searchColumn == "" {
		return rows, nil
	}
	idx := -1
	for i, col := range columns {
		if col == searchColumn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("file has no %q column", searchColumn)
	}

	kept := rows[:0]
	for _, row := range rows {
		if idx < len(row) && strings.TrimSpace(row[idx]) != "" {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

func parseFile(name string, data []byte) ([]string, [][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return parseCSV(data)
	case ".json":
		return parseJSON(data)
	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s", name)
	}
}

func matchesExtension(name string, extensions []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if len(extensions) == 0 {
		return ext == "csv" || ext == "json"
	}
	for _, want := range extensions {
		if ext == strings.ToLower(strings.TrimPrefix(want, ".")) {
			return true
		}
	}
	return false
}
