package domain

import (
	"fmt"
	"strings"
)

// Record is one row fetched from a lexicon table, keyed by column name.
// Records are ephemeral: produced per fetch, formatted, and discarded.
type Record map[string]any

// Str returns the value of a column as a trimmed string, or "" when the
// column is absent or NULL.
func (r Record) Str(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case []byte:
		return strings.TrimSpace(string(s))
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// StrOr returns the value of a column as a string, or fallback when the
// column is absent, NULL, or empty. Formatters use this to keep the
// "暂无" placeholder behavior for incomplete rows.
func (r Record) StrOr(column, fallback string) string {
	if s := r.Str(column); s != "" {
		return s
	}
	return fallback
}

// GeneratedWord is one audited word-generation result, valid or not.
type GeneratedWord struct {
	Combination    string
	IsWord         bool
	Definition     string
	Source         string
	CheckedByModel string
}

// ImportLog records the outcome of importing a single lexicon data file.
// FileID identifies the file across runs (lexicon name + base name);
// FileHash is the SHA-256 of its content, used to skip unchanged files.
type ImportLog struct {
	BatchID     string
	FileID      string
	FileHash    string
	Status      string
	LexiconName string
}

// Import statuses stored in imported_files_log.
const (
	ImportStatusSuccess = "success"
	ImportStatusSkipped = "skipped"
	ImportStatusFailed  = "failed"
)
