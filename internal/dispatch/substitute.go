package dispatch

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dax233/brainhole/internal/lexicon"
)

// escapeChar suppresses substitution of the placeholder token that
// immediately follows it.
const escapeChar = '\\'

// Substitutor scans a template for placeholder tokens and replaces each
// unescaped occurrence with an independently fetched random record.
// Stateless per call; safe for concurrent use.
type Substitutor struct {
	reg      *lexicon.Registry
	resolver Resolver
}

// NewSubstitutor creates a Substitutor over the given registry.
func NewSubstitutor(reg *lexicon.Registry) *Substitutor {
	return &Substitutor{reg: reg}
}

// Fill scans template left to right. At each position:
//
//   - a backslash directly followed by a registered token (longest
//     match) emits the token literally and consumes both, with no fetch;
//   - otherwise the longest registered token starting here is replaced
//     by the resolver's output (success text or failure message);
//   - otherwise one rune is copied unchanged.
//
// A backslash not followed by a registered token is a literal
// backslash. Two occurrences of the same token resolve independently
// and may yield different records.
func (s *Substitutor) Fill(ctx context.Context, template string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(template); {
		if template[i] == escapeChar {
			if _, token, ok := s.reg.MatchPlaceholderPrefix(template[i+1:]); ok {
				out.WriteString(token)
				i += 1 + len(token)
				continue
			}
		}

		if d, token, ok := s.reg.MatchPlaceholderPrefix(template[i:]); ok {
			text, err := s.resolver.Resolve(ctx, d)
			if err != nil {
				return "", err
			}
			out.WriteString(text)
			i += len(token)
			continue
		}

		_, size := utf8.DecodeRuneInString(template[i:])
		out.WriteString(template[i : i+size])
		i += size
	}
	return out.String(), nil
}
