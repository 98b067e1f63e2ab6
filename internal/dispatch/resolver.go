package dispatch

import (
	"context"

	"github.com/dax233/brainhole/internal/lexicon"
)

// Resolver executes bounded-retry random retrieval for one descriptor.
// A descriptor's RetryBudget is the total number of fetch attempts: with
// a budget of 2, a table that always comes up empty is hit exactly
// twice, then the failure message is returned.
type Resolver struct{}

// Resolve attempts up to d.RetryBudget random fetch-and-format calls.
// Empty tables and handler failures count as failed attempts; once the
// budget is spent, d.FailureMessage is returned verbatim as a normal
// result. The only error Resolve returns is context cancellation.
func (Resolver) Resolve(ctx context.Context, d *lexicon.Descriptor) (string, error) {
	for attempt := 0; attempt < d.RetryBudget; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := d.Handler.FormatRandom(ctx, d.Table)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return d.FailureMessage, nil
}
