package db

import (
	"database/sql"
	"fmt"
	"sort"
)

// lexiconTables maps each lexicon data table to its create statement.
// Bookkeeping tables (import log, generated word log) are kept separate
// so random fetch and search can never be pointed at them.
var lexiconTables = map[string]string{
	"brainhole_terms": `CREATE TABLE IF NOT EXISTS brainhole_terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		pinyin TEXT,
		difficulty TEXT,
		win_rate TEXT,
		category TEXT,
		author TEXT,
		definition TEXT,
		match_name TEXT
	)`,
	"pinshi_terms": `CREATE TABLE IF NOT EXISTS pinshi_terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		pinyin TEXT,
		source_text TEXT,
		writing TEXT,
		difficulty TEXT,
		definition TEXT
	)`,
	"fuzhipai_cards": `CREATE TABLE IF NOT EXISTS fuzhipai_cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		card_title TEXT NOT NULL,
		full_text TEXT NOT NULL,
		full_text_hash TEXT UNIQUE
	)`,
	"suilan_terms": `CREATE TABLE IF NOT EXISTS suilan_terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		player TEXT,
		source_text TEXT,
		definition TEXT
	)`,
	"wuxing_terms": `CREATE TABLE IF NOT EXISTS wuxing_terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		pinyin TEXT,
		difficulty TEXT,
		source_origin TEXT,
		author TEXT,
		definition TEXT
	)`,
	"yuanxiao_terms": `CREATE TABLE IF NOT EXISTS yuanxiao_terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		pinyin TEXT,
		source_text TEXT,
		liju_difficulty TEXT,
		naodong_difficulty TEXT,
		definition TEXT
	)`,
	"zhenxiu_terms": `CREATE TABLE IF NOT EXISTS zhenxiu_terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		pinyin TEXT,
		source_text TEXT,
		category TEXT,
		definition TEXT,
		is_disyllabic TEXT,
		term_id_text TEXT
	)`,
}

var bookkeepingTables = []string{
	`CREATE TABLE IF NOT EXISTS imported_files_log (
		file_identifier TEXT PRIMARY KEY,
		file_hash TEXT NOT NULL,
		status TEXT NOT NULL,
		lexicon_name TEXT,
		batch_id TEXT,
		last_imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS generated_word_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		combination TEXT NOT NULL UNIQUE,
		is_word BOOLEAN NOT NULL,
		definition TEXT,
		source TEXT,
		checked_by_model TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Migrate creates all lexicon and bookkeeping tables.
func Migrate(db *sql.DB) error {
	for _, table := range LexiconTableNames() {
		if _, err := db.Exec(lexiconTables[table]); err != nil {
			return fmt.Errorf("creating table %s: %w", table, err)
		}
	}
	for i, stmt := range bookkeepingTables {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("bookkeeping migration %d: %w", i, err)
		}
	}
	return nil
}

// LexiconTableNames returns the names of all lexicon data tables in
// deterministic order.
func LexiconTableNames() []string {
	names := make([]string, 0, len(lexiconTables))
	for name := range lexiconTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLexiconTable reports whether name is a known lexicon data table.
// Repositories check this before interpolating a table name into SQL.
func IsLexiconTable(name string) bool {
	_, ok := lexiconTables[name]
	return ok
}
