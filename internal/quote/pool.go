package quote

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/sergiomago/inspiro/internal/types"
)

// classicQuotes is the embedded last-resort pool. Order matters: fallback
// scans serve entries front to back so the pool drains predictably.
var classicQuotes = []types.Quote{
	{Text: "Be the change you wish to see in the world.", Author: "Mahatma Gandhi"},
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "In three words I can sum up everything I've learned about life: it goes on.", Author: "Robert Frost"},
	{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
	{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Author: "Winston Churchill"},
	{Text: "Two roads diverged in a wood, and I took the one less traveled by.", Author: "Robert Frost"},
	{Text: "Life is what happens when you're busy making other plans.", Author: "John Lennon"},
	{Text: "The only impossible journey is the one you never begin.", Author: "Tony Robbins"},
}

// Pool serves pre-vetted classic quotes, deduplicated through a ledger.
type Pool struct {
	quotes []types.Quote
	randFn func(n int) int
}

// NewPool returns the embedded classic pool.
func NewPool() *Pool {
	return &Pool{quotes: classicQuotes, randFn: rand.Intn}
}

// Len reports the number of pooled quotes.
func (p *Pool) Len() int { return len(p.quotes) }

// FirstUnused scans the pool in order and returns the first entry not yet
// recorded under the classic context, marking it used. The second return is
// false when every entry has been served.
func (p *Pool) FirstUnused(ctx context.Context, ledger Ledger) (types.Quote, bool) {
	for _, q := range p.quotes {
		used, err := ledger.WasUsed(ctx, types.ClassicContextKey, q.Text)
		if err != nil || used {
			continue
		}
		if err := ledger.MarkUsed(ctx, types.ClassicContextKey, q.Text, types.KindClassic); err != nil {
			// Best effort: failing to record must not fail the serve.
			slog.Warn("ledger mark failed", "context", types.ClassicContextKey, "error", err)
		}
		return q, true
	}
	return types.Quote{}, false
}

// Random returns a uniformly random pool entry without consulting the ledger.
// Used only when the pool is fully drained: serving a repeat beats serving
// nothing.
func (p *Pool) Random() types.Quote {
	return p.quotes[p.randFn(len(p.quotes))]
}
