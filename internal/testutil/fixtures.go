package testutil

import (
	"database/sql"
	"testing"
)

// SeedBrainholeTerm inserts one row into brainhole_terms.
func SeedBrainholeTerm(t *testing.T, database *sql.DB, term, pinyin, definition string) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO brainhole_terms (term, pinyin, difficulty, win_rate, category, author, definition, match_name)
		 VALUES (?, ?, '5', '42.0%', '实词', '盐铁桶子', ?, '测试场')`,
		term, pinyin, definition,
	)
	if err != nil {
		t.Fatalf("seeding brainhole term: %v", err)
	}
}

// SeedPinshiTerm inserts one row into pinshi_terms.
func SeedPinshiTerm(t *testing.T, database *sql.DB, term, definition string) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO pinshi_terms (term, pinyin, source_text, writing, difficulty, definition)
		 VALUES (?, 'pīn shì', '测试出处', '书写', '3', ?)`,
		term, definition,
	)
	if err != nil {
		t.Fatalf("seeding pinshi term: %v", err)
	}
}

// SeedSuilanTerm inserts one row into suilan_terms.
func SeedSuilanTerm(t *testing.T, database *sql.DB, term string) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO suilan_terms (term, player, source_text, definition)
		 VALUES (?, '选手甲', '出处', '解释')`,
		term,
	)
	if err != nil {
		t.Fatalf("seeding suilan term: %v", err)
	}
}
