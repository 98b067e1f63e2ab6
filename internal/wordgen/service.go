package wordgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/dax233/brainhole/internal/domain"
	"github.com/dax233/brainhole/internal/repository"
)

// ErrInvalidOutput indicates the model reply could not be parsed into
// the expected judgement array.
var ErrInvalidOutput = errors.New("invalid word judgement output")

// cjkLow and cjkHigh bound the unified CJK ideograph block the
// character pool is drawn from.
const (
	cjkLow  = '一'
	cjkHigh = '鿿'
)

// Source names one lexicon column the character pool is built from.
// Sampled combinations already present in a source are discarded.
type Source struct {
	Table  string
	Column string
}

// Config tunes combination sampling.
type Config struct {
	// MaxPerRequest bounds how many combinations one message may ask for.
	MaxPerRequest int
	// LengthWeights maps combination length to its sampling weight.
	// Weights need not sum to 1; they are normalized at pick time.
	LengthWeights map[int]float64
}

// Service implements the 造词 round: sample unseen CJK combinations
// from the lexicon character pool, ask a chat model which of them are
// real words, log the verdicts, and format a chat reply.
type Service struct {
	entries repository.EntryRepo
	words   repository.GeneratedWordRepo
	client  ChatClient
	model   string
	sources []Source
	cfg     Config

	mu   sync.Mutex
	pool []rune
}

// NewService wires a word-generation service. The character pool is
// built lazily on first use and cached for the process lifetime.
func NewService(entries repository.EntryRepo, words repository.GeneratedWordRepo, client ChatClient, model string, sources []Source, cfg Config) *Service {
	if len(cfg.LengthWeights) == 0 {
		cfg.LengthWeights = map[int]float64{2: 0.80, 4: 0.15, 3: 0.05}
	}
	return &Service{
		entries: entries,
		words:   words,
		client:  client,
		model:   model,
		sources: sources,
		cfg:     cfg,
	}
}

// MaxPerRequest bounds the per-message combination count.
func (s *Service) MaxPerRequest() int {
	return s.cfg.MaxPerRequest
}

// GenerateReply runs one generation round for n combinations and
// returns the chat reply.
func (s *Service) GenerateReply(ctx context.Context, n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("combination count must be positive, got %d", n)
	}

	pool, err := s.charPool(ctx)
	if err != nil {
		return "", err
	}
	if len(pool) < 2 {
		return "", fmt.Errorf("character pool too small: %d distinct characters", len(pool))
	}

	combos, err := s.sampleCombinations(ctx, pool, n)
	if err != nil {
		return "", err
	}
	if len(combos) == 0 {
		return "没有采样出新的汉字组合，请稍后再试。", nil
	}

	raw, err := s.client.Complete(ctx, buildPrompt(combos))
	if err != nil {
		return "", fmt.Errorf("judging combinations: %w", err)
	}
	judged, err := parseJudgement(raw)
	if err != nil {
		return "", err
	}

	checked := make([]domain.GeneratedWord, 0, len(combos))
	for _, combo := range combos {
		w := domain.GeneratedWord{Combination: combo, CheckedByModel: s.model}
		if j, ok := judged[combo]; ok {
			w.IsWord = j.IsWord
			w.Definition = j.Definition
			w.Source = j.Source
		}
		checked = append(checked, w)
	}
	if err := s.words.BatchInsert(ctx, checked); err != nil {
		return "", fmt.Errorf("logging generated words: %w", err)
	}

	return formatReply(checked), nil
}

// charPool collects the distinct CJK ideographs appearing in the
// configured source columns.
func (s *Service) charPool(ctx context.Context) ([]rune, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		return s.pool, nil
	}

	set := make(map[rune]struct{})
	for _, src := range s.sources {
		values, err := s.entries.DistinctColumn(ctx, src.Table, src.Column)
		if err != nil {
			return nil, fmt.Errorf("building character pool from %s.%s: %w", src.Table, src.Column, err)
		}
		for _, v := range values {
			for _, r := range v {
				if r >= cjkLow && r <= cjkHigh {
					set[r] = struct{}{}
				}
			}
		}
	}

	pool := make([]rune, 0, len(set))
	for r := range set {
		pool = append(pool, r)
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i] < pool[j] })
	s.pool = pool
	return pool, nil
}

// sampleCombinations draws up to n combinations that are new: not
// sampled this round, not in the generation log, and not an entry in
// any source lexicon. It gives up after n*20 attempts, so a depleted
// pool returns fewer than n rather than spinning.
func (s *Service) sampleCombinations(ctx context.Context, pool []rune, n int) ([]string, error) {
	combos := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	maxAttempts := n * 20

	for attempt := 0; attempt < maxAttempts && len(combos) < n; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		combo := s.randomCombination(pool)
		if _, dup := seen[combo]; dup {
			continue
		}
		seen[combo] = struct{}{}

		logged, err := s.words.Existing(ctx, []string{combo})
		if err != nil {
			return nil, fmt.Errorf("checking generation log: %w", err)
		}
		if len(logged) > 0 {
			continue
		}

		known, err := s.isLexiconTerm(ctx, combo)
		if err != nil {
			return nil, err
		}
		if known {
			continue
		}

		combos = append(combos, combo)
	}
	return combos, nil
}

func (s *Service) isLexiconTerm(ctx context.Context, combo string) (bool, error) {
	for _, src := range s.sources {
		rows, err := s.entries.Search(ctx, src.Table, src.Column, combo)
		if err != nil {
			return false, fmt.Errorf("checking %s for %q: %w", src.Table, combo, err)
		}
		if len(rows) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) randomCombination(pool []rune) string {
	length := s.pickLength()
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteRune(pool[rand.IntN(len(pool))])
	}
	return b.String()
}

func (s *Service) pickLength() int {
	lengths := make([]int, 0, len(s.cfg.LengthWeights))
	total := 0.0
	for l, w := range s.cfg.LengthWeights {
		lengths = append(lengths, l)
		total += w
	}
	sort.Ints(lengths)

	target := rand.Float64() * total
	for _, l := range lengths {
		target -= s.cfg.LengthWeights[l]
		if target < 0 {
			return l
		}
	}
	return lengths[len(lengths)-1]
}

func buildPrompt(combos []string) string {
	return fmt.Sprintf(
		"请判断以下汉字组合是否为真实存在的中文词汇：%s。\n"+
			"对每个组合返回一个 JSON 数组，元素形如 "+
			`{"word": "组合", "is_word": true, "definition": "释义", "source": "出处"}`+
			"；不是词汇的组合 is_word 为 false，definition 和 source 留空。"+
			"只返回 JSON 数组，不要附加任何其他说明。",
		strings.Join(combos, "、"))
}

type judgement struct {
	Word       string `json:"word"`
	IsWord     bool   `json:"is_word"`
	Definition string `json:"definition"`
	Source     string `json:"source"`
}

// parseJudgement decodes the model reply, tolerating a markdown code
// fence around the JSON array.
func parseJudgement(raw string) (map[string]judgement, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var items []judgement
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	byWord := make(map[string]judgement, len(items))
	for _, item := range items {
		byWord[item.Word] = item
	}
	return byWord, nil
}

func formatReply(checked []domain.GeneratedWord) string {
	var words, nonWords []string
	for _, w := range checked {
		if w.IsWord {
			line := w.Combination + "：" + w.Definition
			if w.Source != "" {
				line += "（出处：" + w.Source + "）"
			}
			words = append(words, line)
		} else {
			nonWords = append(nonWords, w.Combination)
		}
	}

	var sections []string
	if len(words) > 0 {
		sections = append(sections, "生成汉字组合中存在词汇：\n"+strings.Join(words, "\n"))
	}
	if len(nonWords) > 0 {
		sections = append(sections, "以下是无含义汉字组合：\n"+strings.Join(nonWords, "、"))
	}
	if len(sections) == 0 {
		return "本次没有产出任何判断结果。"
	}
	return strings.Join(sections, "\n\n---\n\n")
}
