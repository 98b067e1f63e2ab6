package dispatch

import (
	"context"
	"testing"

	"github.com/dax233/brainhole/internal/domain"
	"github.com/dax233/brainhole/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill_NoTokensPassesThrough(t *testing.T) {
	entries := newCountingEntries()
	sub := NewSubstitutor(testRegistry(t, entries))

	for _, template := range []string{
		"",
		"今天天气真不错。",
		"plain ascii text",
		"脑洞大开但没有完整的词库名字", // token fragments, never a full registered token
	} {
		out, err := sub.Fill(context.Background(), template)
		require.NoError(t, err)
		assert.Equal(t, template, out)
	}
	assert.Zero(t, entries.totalFetches())
}

func TestFill_ReplacesEachOccurrenceIndependently(t *testing.T) {
	entries := newCountingEntries()
	entries.rows["brainhole_terms"] = []domain.Record{{"term": "甲"}}
	entries.rows["suilan_terms"] = []domain.Record{{"term": "乙"}}
	sub := NewSubstitutor(testRegistry(t, entries))

	out, err := sub.Fill(context.Background(), "今天天气真脑洞词库，心情词库不错。")
	require.NoError(t, err)

	assert.Contains(t, out, "甲")
	assert.Contains(t, out, "乙")
	assert.Contains(t, out, "今天天气真")
	assert.Contains(t, out, "，")
	assert.Contains(t, out, "不错。")
	assert.NotContains(t, out, "脑洞词库")
	assert.NotContains(t, out, "心情词库")
	assert.Equal(t, 1, entries.fetchCalls["brainhole_terms"])
	assert.Equal(t, 1, entries.fetchCalls["suilan_terms"])
}

func TestFill_SameTokenTwiceFetchesTwice(t *testing.T) {
	entries := newCountingEntries()
	entries.rows["brainhole_terms"] = []domain.Record{{"term": "甲"}}
	sub := NewSubstitutor(testRegistry(t, entries))

	_, err := sub.Fill(context.Background(), "脑洞词库和脑洞词库")
	require.NoError(t, err)
	assert.Equal(t, 2, entries.fetchCalls["brainhole_terms"], "occurrences resolve independently")
}

func TestFill_EscapedTokenEmittedLiterally(t *testing.T) {
	entries := newCountingEntries()
	entries.rows["brainhole_terms"] = []domain.Record{{"term": "不应出现"}}
	sub := NewSubstitutor(testRegistry(t, entries))

	out, err := sub.Fill(context.Background(), `我想说的是\脑洞词库这个词。`)
	require.NoError(t, err)
	assert.Equal(t, "我想说的是脑洞词库这个词。", out)
	assert.Zero(t, entries.totalFetches(), "escape suppresses the store call")
}

func TestFill_BackslashWithoutTokenIsLiteral(t *testing.T) {
	entries := newCountingEntries()
	sub := NewSubstitutor(testRegistry(t, entries))

	out, err := sub.Fill(context.Background(), `路径 C:\data\file 保持原样`)
	require.NoError(t, err)
	assert.Equal(t, `路径 C:\data\file 保持原样`, out)
}

func TestFill_DoubleBackslashBeforeToken(t *testing.T) {
	entries := newCountingEntries()
	entries.rows["brainhole_terms"] = []domain.Record{{"term": "甲"}}
	sub := NewSubstitutor(testRegistry(t, entries))

	// The first backslash is not followed by a token, so it stays; the
	// second escapes the token.
	out, err := sub.Fill(context.Background(), `\\脑洞词库`)
	require.NoError(t, err)
	assert.Equal(t, `\脑洞词库`, out)
	assert.Zero(t, entries.totalFetches())
}

func TestFill_LongestMatchWins(t *testing.T) {
	entries := newCountingEntries()
	entries.rows["brainhole_terms"] = []domain.Record{{"term": "短记录"}}
	entries.rows["suilan_terms"] = []domain.Record{{"term": "长记录"}}

	reg, err := lexicon.Build([]*lexicon.Descriptor{
		{
			Name: "脑洞", Table: "brainhole_terms", SearchColumn: "term",
			Keywords: []string{"随机脑洞"}, Placeholder: "脑洞",
			RetryBudget: 1, FailureMessage: "失败",
			Handler: mustHandler(t, "brainhole", entries),
		},
		{
			Name: "脑洞扩展", Table: "suilan_terms", SearchColumn: "term",
			Keywords: []string{"随机扩展"}, Placeholder: "脑洞词库",
			RetryBudget: 1, FailureMessage: "失败",
			Handler: mustHandler(t, "suilan", entries),
		},
	})
	require.NoError(t, err)
	sub := NewSubstitutor(reg)

	out, err := sub.Fill(context.Background(), "看看脑洞词库吧")
	require.NoError(t, err)
	assert.Contains(t, out, "长记录", "the longer token's descriptor must resolve")
	assert.Zero(t, entries.fetchCalls["brainhole_terms"], "the shorter token must never shadow the longer one")

	// The short token still works where the long one does not match.
	out, err = sub.Fill(context.Background(), "看看脑洞吧")
	require.NoError(t, err)
	assert.Contains(t, out, "短记录")
}

func TestFill_FailureMessageSubstitutedInline(t *testing.T) {
	entries := newCountingEntries()
	entries.rows["suilan_terms"] = []domain.Record{{"term": "乙"}}
	// brainhole_terms stays empty.
	sub := NewSubstitutor(testRegistry(t, entries))

	out, err := sub.Fill(context.Background(), "前缀脑洞词库中缀心情词库后缀")
	require.NoError(t, err)
	assert.Contains(t, out, "脑洞词库暂时挖不出东西。", "failure message replaces only that occurrence")
	assert.Contains(t, out, "乙", "the rest of the template is unaffected")
	assert.Contains(t, out, "前缀")
	assert.Contains(t, out, "中缀")
	assert.Contains(t, out, "后缀")
}

func TestFill_CancelledContext(t *testing.T) {
	entries := newCountingEntries()
	entries.rows["brainhole_terms"] = []domain.Record{{"term": "甲"}}
	sub := NewSubstitutor(testRegistry(t, entries))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sub.Fill(ctx, "脑洞词库")
	require.ErrorIs(t, err, context.Canceled)
}
