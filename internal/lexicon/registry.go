package lexicon

import (
	"sort"
	"strings"

	"github.com/dax233/brainhole/internal/domain"
)

// Registry holds the validated descriptor set and its derived lookup
// indices. Built once at startup; read-only afterwards, so concurrent
// dispatches read it without locking.
type Registry struct {
	all           []*Descriptor
	byKeyword     map[string]*Descriptor
	byPlaceholder map[string]*Descriptor

	// placeholder tokens ordered longest first, for the longest-match
	// rule during template scanning. Equal lengths keep registration
	// order.
	tokensByLength []string
}

// Build validates the descriptors and constructs the registry indices.
// Any invalid or conflicting descriptor yields a *domain.ConfigError;
// callers must treat that as fatal and refuse to start.
func Build(descs []*Descriptor) (*Registry, error) {
	r := &Registry{
		byKeyword:     make(map[string]*Descriptor),
		byPlaceholder: make(map[string]*Descriptor),
	}

	tables := make(map[string]string)
	for _, d := range descs {
		if err := validateDescriptor(d); err != nil {
			return nil, err
		}

		if prev, ok := tables[d.Table]; ok {
			return nil, domain.NewConfigError(d.Name, "table %q already registered by lexicon %q", d.Table, prev)
		}
		tables[d.Table] = d.Name

		if prev, ok := r.byPlaceholder[d.Placeholder]; ok {
			return nil, domain.NewConfigError(d.Name, "placeholder %q already registered by lexicon %q", d.Placeholder, prev.Name)
		}
		r.byPlaceholder[d.Placeholder] = d
		r.tokensByLength = append(r.tokensByLength, d.Placeholder)

		// Keywords may collide across descriptors: the first
		// registered descriptor keeps the keyword, later ones are
		// still reachable through their other keywords.
		for _, kw := range d.Keywords {
			if _, ok := r.byKeyword[kw]; !ok {
				r.byKeyword[kw] = d
			}
		}

		r.all = append(r.all, d)
	}

	sort.SliceStable(r.tokensByLength, func(i, j int) bool {
		return len(r.tokensByLength[i]) > len(r.tokensByLength[j])
	})

	return r, nil
}

func validateDescriptor(d *Descriptor) error {
	name := d.Name
	if name == "" {
		name = "(unnamed)"
	}
	switch {
	case d.Name == "":
		return domain.NewConfigError(name, "missing name")
	case d.Table == "":
		return domain.NewConfigError(name, "missing table name")
	case d.SearchColumn == "":
		return domain.NewConfigError(name, "missing search column")
	case d.Placeholder == "":
		return domain.NewConfigError(name, "missing placeholder token")
	case d.FailureMessage == "":
		return domain.NewConfigError(name, "missing failure message")
	case len(d.Keywords) == 0:
		return domain.NewConfigError(name, "needs at least one keyword")
	case d.RetryBudget < 0:
		return domain.NewConfigError(name, "retry budget must be non-negative, got %d", d.RetryBudget)
	case d.Handler == nil:
		return domain.NewConfigError(name, "missing handler")
	}
	for i, kw := range d.Keywords {
		if kw == "" {
			return domain.NewConfigError(name, "keyword %d is empty", i)
		}
	}
	return nil
}

// All returns the descriptors in registration order.
func (r *Registry) All() []*Descriptor {
	return r.all
}

// ByPlaceholder returns the descriptor owning the exact token.
func (r *Registry) ByPlaceholder(token string) (*Descriptor, bool) {
	d, ok := r.byPlaceholder[token]
	return d, ok
}

// ByKeyword returns the descriptor owning the exact keyword.
func (r *Registry) ByKeyword(keyword string) (*Descriptor, bool) {
	d, ok := r.byKeyword[keyword]
	return d, ok
}

// MatchKeyword scans descriptors in registration order and returns the
// first whose keyword set has a substring match within message.
func (r *Registry) MatchKeyword(message string) (*Descriptor, bool) {
	for _, d := range r.all {
		for _, kw := range d.Keywords {
			if strings.Contains(message, kw) {
				return d, true
			}
		}
	}
	return nil, false
}

// MatchPlaceholderPrefix returns the longest registered placeholder
// token that s starts with. A token that is a prefix of a longer
// registered token never wins at a position where the longer one
// matches.
func (r *Registry) MatchPlaceholderPrefix(s string) (*Descriptor, string, bool) {
	for _, token := range r.tokensByLength {
		if strings.HasPrefix(s, token) {
			return r.byPlaceholder[token], token, true
		}
	}
	return nil, "", false
}
