package lexicon

import (
	"context"
	"fmt"

	"github.com/dax233/brainhole/internal/domain"
	"github.com/dax233/brainhole/internal/repository"
)

// Handler is the per-lexicon formatting capability pair: fetch a random
// record and format it, or format an already-fetched record.
type Handler interface {
	// FormatRandom fetches one random record from the table and
	// formats it. An empty table or formatting failure is reported as
	// *domain.HandlerError for the retry executor to absorb.
	FormatRandom(ctx context.Context, table string) (string, error)

	// FormatRecord formats a record. searchResult switches the title
	// to the 查词结果 variant.
	FormatRecord(rec domain.Record, searchResult bool) string
}

type formatFunc func(rec domain.Record, searchResult bool) string

// handler binds an entry store and a concrete format function. All
// lexicons share the fetch path; only formatting differs.
type handler struct {
	entries repository.EntryRepo
	display string
	format  formatFunc
}

func (h *handler) FormatRandom(ctx context.Context, table string) (string, error) {
	rec, err := h.entries.FetchRandom(ctx, table)
	if err != nil {
		return "", &domain.HandlerError{Lexicon: h.display, Table: table, Err: err}
	}
	return h.format(rec, false), nil
}

func (h *handler) FormatRecord(rec domain.Record, searchResult bool) string {
	return h.format(rec, searchResult)
}

// handlerKinds maps the handler name used in configuration to the
// display label and format function it selects.
var handlerKinds = map[string]struct {
	display string
	format  formatFunc
}{
	"brainhole": {"脑洞", formatBrainhole},
	"pinshi":    {"拼释", formatPinshi},
	"fuzhipai":  {"蝠汁牌", formatFuzhipai},
	"suilan":    {"随蓝", formatSuilan},
	"wuxing":    {"五行", formatWuxing},
	"yuanxiao":  {"元晓", formatYuanxiao},
	"zhenxiu":   {"祯休", formatZhenxiu},
}

// NewHandler resolves a handler by its configured name, binding it to
// the given entry store. Resolution happens exactly once, at registry
// build time.
func NewHandler(kind string, entries repository.EntryRepo) (Handler, error) {
	k, ok := handlerKinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown handler %q", kind)
	}
	return &handler{entries: entries, display: k.display, format: k.format}, nil
}

// HandlerKinds returns the names of all registered handler kinds.
func HandlerKinds() []string {
	kinds := make([]string, 0, len(handlerKinds))
	for k := range handlerKinds {
		kinds = append(kinds, k)
	}
	return kinds
}

// titlePrefix renders the bracketed title line shared by all formatters.
func titlePrefix(display string, searchResult bool) string {
	if searchResult {
		return "[" + display + " - 查词结果]"
	}
	return "[" + display + "]"
}
