package wordgen

import (
	"context"
	"testing"

	"github.com/dax233/brainhole/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntries struct {
	distinct map[string][]string // "table.column" -> values
	terms    map[string]struct{} // values that count as lexicon entries
}

func (f *fakeEntries) FetchRandom(ctx context.Context, table string) (domain.Record, error) {
	return nil, domain.ErrNoEntry
}

func (f *fakeEntries) Search(ctx context.Context, table, column, term string) ([]domain.Record, error) {
	if _, ok := f.terms[term]; ok {
		return []domain.Record{{column: term}}, nil
	}
	return nil, nil
}

func (f *fakeEntries) DistinctColumn(ctx context.Context, table, column string) ([]string, error) {
	return f.distinct[table+"."+column], nil
}

type fakeWordLog struct {
	logged   map[string]struct{}
	inserted []domain.GeneratedWord
}

func (f *fakeWordLog) Existing(ctx context.Context, combinations []string) ([]string, error) {
	var out []string
	for _, c := range combinations {
		if _, ok := f.logged[c]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeWordLog) BatchInsert(ctx context.Context, words []domain.GeneratedWord) error {
	f.inserted = append(f.inserted, words...)
	return nil
}

type stubChat struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (s *stubChat) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.reply, s.err
}

func newTestService(entries *fakeEntries, words *fakeWordLog, chat ChatClient) *Service {
	return NewService(entries, words, chat, "deepseek-v2",
		[]Source{{Table: "brainhole_terms", Column: "term"}},
		Config{MaxPerRequest: 100, LengthWeights: map[int]float64{2: 1.0}})
}

func TestCharPool_FiltersToCJKAndDedupes(t *testing.T) {
	entries := &fakeEntries{distinct: map[string][]string{
		"brainhole_terms.term": {"天地", "天空abc", "3.5版"},
	}}
	svc := newTestService(entries, &fakeWordLog{}, &stubChat{})

	pool, err := svc.charPool(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []rune("天地空版"), pool)

	// second call hits the cache, not the repo
	entries.distinct = nil
	again, err := svc.charPool(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pool, again)
}

func TestGenerateReply_LogsVerdictsAndFormatsSections(t *testing.T) {
	entries := &fakeEntries{distinct: map[string][]string{
		"brainhole_terms.term": {"天地玄黄"},
	}}
	words := &fakeWordLog{}
	chat := &stubChat{}
	svc := newTestService(entries, words, chat)

	// judge every sampled combination: none are real words
	chat.reply = "[]"
	reply, err := svc.GenerateReply(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 1, chat.calls)
	assert.Contains(t, chat.prompt, "JSON")
	require.Len(t, words.inserted, 3)
	for _, w := range words.inserted {
		assert.False(t, w.IsWord)
		assert.Equal(t, "deepseek-v2", w.CheckedByModel)
		assert.Contains(t, chat.prompt, w.Combination)
	}
	assert.Contains(t, reply, "以下是无含义汉字组合：")
	assert.NotContains(t, reply, "生成汉字组合中存在词汇：")
}

func TestGenerateReply_WordVerdictCarriesDefinitionAndSource(t *testing.T) {
	entries := &fakeEntries{distinct: map[string][]string{
		"brainhole_terms.term": {"天"},
	}}
	words := &fakeWordLog{}
	chat := &stubChat{}
	svc := NewService(entries, words, chat, "deepseek-v2",
		[]Source{{Table: "brainhole_terms", Column: "term"}},
		Config{MaxPerRequest: 100, LengthWeights: map[int]float64{2: 1.0}})

	// pool has one character, so the only 2-char combination is 天天
	chat.reply = "```json\n[{\"word\": \"天天\", \"is_word\": true, \"definition\": \"每一天\", \"source\": \"现代汉语词典\"}]\n```"
	reply, err := svc.GenerateReply(context.Background(), 1)

	// a single-rune pool is rejected up front
	require.Error(t, err)

	entries.distinct["brainhole_terms.term"] = []string{"天", "地"}
	svc = NewService(entries, words, chat, "deepseek-v2",
		[]Source{{Table: "brainhole_terms", Column: "term"}},
		Config{MaxPerRequest: 100, LengthWeights: map[int]float64{2: 1.0}})
	reply, err = svc.GenerateReply(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, words.inserted, 1)
	got := words.inserted[0]
	if got.IsWord {
		assert.Contains(t, reply, "生成汉字组合中存在词汇：")
		assert.Contains(t, reply, "每一天")
		assert.Contains(t, reply, "（出处：现代汉语词典）")
	} else {
		// sampled a combination other than 天天; verdict defaults to non-word
		assert.Contains(t, reply, "以下是无含义汉字组合：")
	}
}

func TestGenerateReply_AllCombinationsAlreadyLogged(t *testing.T) {
	entries := &fakeEntries{distinct: map[string][]string{
		"brainhole_terms.term": {"天地"},
	}}
	words := &fakeWordLog{logged: map[string]struct{}{
		"天天": {}, "天地": {}, "地天": {}, "地地": {},
	}}
	chat := &stubChat{}
	svc := newTestService(entries, words, chat)

	reply, err := svc.GenerateReply(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "没有采样出新的汉字组合，请稍后再试。", reply)
	assert.Zero(t, chat.calls, "exhausted sampling must not call the model")
	assert.Empty(t, words.inserted)
}

func TestGenerateReply_SkipsExistingLexiconTerms(t *testing.T) {
	entries := &fakeEntries{
		distinct: map[string][]string{"brainhole_terms.term": {"天地"}},
		terms:    map[string]struct{}{"天天": {}, "天地": {}, "地天": {}, "地地": {}},
	}
	words := &fakeWordLog{}
	chat := &stubChat{}
	svc := newTestService(entries, words, chat)

	reply, err := svc.GenerateReply(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "没有采样出新的汉字组合，请稍后再试。", reply)
	assert.Zero(t, chat.calls)
}

func TestGenerateReply_RejectsNonPositiveCount(t *testing.T) {
	svc := newTestService(&fakeEntries{}, &fakeWordLog{}, &stubChat{})
	_, err := svc.GenerateReply(context.Background(), 0)
	require.Error(t, err)
}

func TestPickLength_HonorsConfiguredLengths(t *testing.T) {
	svc := NewService(&fakeEntries{}, &fakeWordLog{}, &stubChat{}, "m", nil,
		Config{MaxPerRequest: 10, LengthWeights: map[int]float64{2: 0.80, 3: 0.05, 4: 0.15}})

	for i := 0; i < 200; i++ {
		l := svc.pickLength()
		assert.Contains(t, []int{2, 3, 4}, l)
	}
}

func TestParseJudgement(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain array", `[{"word": "星河", "is_word": true, "definition": "银河", "source": "古籍"}]`},
		{"json fence", "```json\n[{\"word\": \"星河\", \"is_word\": true, \"definition\": \"银河\", \"source\": \"古籍\"}]\n```"},
		{"bare fence", "```\n[{\"word\": \"星河\", \"is_word\": true, \"definition\": \"银河\", \"source\": \"古籍\"}]\n```"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			byWord, err := parseJudgement(tc.raw)
			require.NoError(t, err)
			require.Contains(t, byWord, "星河")
			assert.True(t, byWord["星河"].IsWord)
			assert.Equal(t, "银河", byWord["星河"].Definition)
		})
	}

	_, err := parseJudgement("抱歉，我无法判断。")
	require.ErrorIs(t, err, ErrInvalidOutput)
}
