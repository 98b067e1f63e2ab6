package dispatch

import (
	"context"
	"testing"

	"github.com/dax233/brainhole/internal/domain"
	"github.com/dax233/brainhole/internal/lexicon"
	"github.com/dax233/brainhole/internal/repository"
	"github.com/stretchr/testify/require"
)

// countingEntries is an EntryRepo with per-table canned rows that
// counts fetch and search calls.
type countingEntries struct {
	rows       map[string][]domain.Record
	fetchCalls map[string]int
	searches   int
}

var _ repository.EntryRepo = (*countingEntries)(nil)

func newCountingEntries() *countingEntries {
	return &countingEntries{
		rows:       make(map[string][]domain.Record),
		fetchCalls: make(map[string]int),
	}
}

func (s *countingEntries) FetchRandom(ctx context.Context, table string) (domain.Record, error) {
	s.fetchCalls[table]++
	rows := s.rows[table]
	if len(rows) == 0 {
		return nil, domain.ErrNoEntry
	}
	// Deterministic "random": always the first row.
	return rows[0], nil
}

func (s *countingEntries) Search(ctx context.Context, table, column, term string) ([]domain.Record, error) {
	s.searches++
	var out []domain.Record
	for _, rec := range s.rows[table] {
		if rec.Str(column) == term {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *countingEntries) DistinctColumn(ctx context.Context, table, column string) ([]string, error) {
	var out []string
	for _, rec := range s.rows[table] {
		out = append(out, rec.Str(column))
	}
	return out, nil
}

func (s *countingEntries) totalFetches() int {
	n := 0
	for _, c := range s.fetchCalls {
		n += c
	}
	return n
}

func mustHandler(t *testing.T, kind string, entries repository.EntryRepo) lexicon.Handler {
	t.Helper()
	h, err := lexicon.NewHandler(kind, entries)
	require.NoError(t, err)
	return h
}

// testRegistry builds the two-lexicon setup used across these tests:
// 脑洞 (keyword 随机脑洞, token 脑洞词库) and 随蓝 (keyword 随机心情,
// token 心情词库).
func testRegistry(t *testing.T, entries repository.EntryRepo) *lexicon.Registry {
	t.Helper()
	reg, err := lexicon.Build([]*lexicon.Descriptor{
		{
			Name:           "脑洞",
			Table:          "brainhole_terms",
			SearchColumn:   "term",
			Keywords:       []string{"随机脑洞"},
			Placeholder:    "脑洞词库",
			RetryBudget:    2,
			FailureMessage: "脑洞词库暂时挖不出东西。",
			Handler:        mustHandler(t, "brainhole", entries),
		},
		{
			Name:           "心情",
			Table:          "suilan_terms",
			SearchColumn:   "term",
			Keywords:       []string{"随机心情"},
			Placeholder:    "心情词库",
			RetryBudget:    2,
			FailureMessage: "心情词库暂时没有内容。",
			Handler:        mustHandler(t, "suilan", entries),
		},
	})
	require.NoError(t, err)
	return reg
}
