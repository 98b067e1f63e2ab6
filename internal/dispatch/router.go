package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dax233/brainhole/internal/lexicon"
	"github.com/dax233/brainhole/internal/repository"
)

// Reserved command prefixes, matched case-sensitively at the start of a
// message. Anything else falls through to the keyword-trigger scan.
const (
	SearchPrefix   = "查词"
	FillPrefix     = "随机填词"
	GeneratePrefix = "造词"
)

const (
	notFoundMessage  = "没有在任何词库中找到这个词条。"
	searchUsage      = "请在 查词 后面加上要查询的词。"
	fillUsage        = "请在 随机填词 后面提供模板文本。"
	generateUsage    = "要输入数字，例如 '造词 5'。"
	searchDelimiter  = "\n\n"
	defaultGenerated = 5
)

// WordGenerator is the optional 造词 capability behind the generate
// prefix. A nil generator leaves 造词 messages to the keyword scan.
type WordGenerator interface {
	// GenerateReply runs one generation round for n combinations and
	// returns the chat reply.
	GenerateReply(ctx context.Context, n int) (string, error)

	// MaxPerRequest bounds the per-message combination count.
	MaxPerRequest() int
}

// Router classifies one incoming message and dispatches it. Rules are
// evaluated in fixed priority order, first match wins: search, template
// fill, word generation, keyword trigger. Stateless between messages;
// safe for concurrent use.
type Router struct {
	reg      *lexicon.Registry
	entries  repository.EntryRepo
	resolver Resolver
	sub      *Substitutor
	gen      WordGenerator
}

// NewRouter creates a Router. gen may be nil to disable 造词.
func NewRouter(reg *lexicon.Registry, entries repository.EntryRepo, gen WordGenerator) *Router {
	return &Router{
		reg:     reg,
		entries: entries,
		sub:     NewSubstitutor(reg),
		gen:     gen,
	}
}

// Substitutor exposes the router's template substitutor for callers
// that fill templates directly (CLI fill command).
func (r *Router) Substitutor() *Substitutor {
	return r.sub
}

// Dispatch routes message and returns the reply. handled is false when
// no rule matched, in which case the message must be left untouched for
// other consumers and no response emitted. The returned error is
// reserved for context cancellation: a cancelled dispatch produces no
// partial reply.
func (r *Router) Dispatch(ctx context.Context, message string) (reply string, handled bool, err error) {
	switch {
	case strings.HasPrefix(message, SearchPrefix):
		reply, err = r.search(ctx, strings.TrimSpace(strings.TrimPrefix(message, SearchPrefix)))
		return reply, true, err

	case strings.HasPrefix(message, FillPrefix):
		template := strings.TrimLeft(strings.TrimPrefix(message, FillPrefix), " \t")
		if template == "" {
			return fillUsage, true, nil
		}
		reply, err = r.sub.Fill(ctx, template)
		return reply, true, err

	case r.gen != nil && strings.HasPrefix(message, GeneratePrefix):
		reply, err = r.generate(ctx, strings.TrimSpace(strings.TrimPrefix(message, GeneratePrefix)))
		return reply, true, err
	}

	if d, ok := r.reg.MatchKeyword(message); ok {
		reply, err = r.resolver.Resolve(ctx, d)
		return reply, true, err
	}
	return "", false, nil
}

// search runs an exact-match query over every descriptor in
// registration order and concatenates the formatted blocks. A store
// error on one table skips that table rather than losing the rest.
func (r *Router) search(ctx context.Context, term string) (string, error) {
	if term == "" {
		return searchUsage, nil
	}

	var blocks []string
	for _, d := range r.reg.All() {
		records, err := r.entries.Search(ctx, d.Table, d.SearchColumn, term)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		for _, rec := range records {
			blocks = append(blocks, d.Handler.FormatRecord(rec, true))
		}
	}

	if len(blocks) == 0 {
		return notFoundMessage, nil
	}
	return strings.Join(blocks, searchDelimiter), nil
}

func (r *Router) generate(ctx context.Context, arg string) (string, error) {
	count := defaultGenerated
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return generateUsage, nil
		}
		count = n
	}
	limit := r.gen.MaxPerRequest()
	if count < 1 || count > limit {
		return fmt.Sprintf("数量必须在 1 到 %d 之间。", limit), nil
	}

	reply, err := r.gen.GenerateReply(ctx, count)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "造词过程中出错了，请稍后再试。", nil
	}
	return reply, nil
}
