package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/sergiomago/inspiro/internal/types"
)

// ErrNotConfigured indicates the generator has no completion provider.
// Unlike every other failure in the generation flow, this must reach the
// caller: masking it with a fallback quote would hide an operational problem.
var ErrNotConfigured = errors.New("quote provider not configured")

// Completer issues one completion request to the text-generation provider.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Ledger is the append-only record of quotes already served per context.
type Ledger interface {
	WasUsed(ctx context.Context, contextKey, quoteText string) (bool, error)
	MarkUsed(ctx context.Context, contextKey, quoteText string, kind types.SourceKind) error
}

// Result is the outcome of one Generate call. Exactly one of Quote or
// Exhausted is meaningful: Exhausted means the provider explicitly declared
// it has no more unique material for this context.
type Result struct {
	Quote     types.Quote
	Exhausted bool
	Message   string
}

// Options tunes orchestrator behavior.
type Options struct {
	// ClassicProbability is the chance a mixed, term-less request is served
	// straight from the static pool. Historical builds ranged 0.1-0.5; the
	// shipped default (set by config) is 0.2. Zero disables the
	// short-circuit entirely.
	ClassicProbability float64

	// AssumeUnusedOnLedgerError flips the dedup failure policy from the
	// default "assume used" (never serve a possible duplicate) to
	// "assume unused" (availability over uniqueness).
	AssumeUnusedOnLedgerError bool
}

const (
	// Author lookups get more retries: verified-author quotes are scarcer
	// and collide with the ledger more often.
	maxAttemptsAuthor  = 8
	maxAttemptsDefault = 6
)

// Generator runs the generate/extract/dedupe/retry loop. Each call is a
// strictly sequential flow; concurrent calls share nothing but the ledger.
type Generator struct {
	completer Completer
	ledger    Ledger
	pool      *Pool
	opts      Options
	randFloat func() float64
}

// NewGenerator wires the orchestrator. completer may be nil when the
// provider is unconfigured; Generate then fails with ErrNotConfigured.
func NewGenerator(completer Completer, ledger Ledger, pool *Pool, opts Options) *Generator {
	if pool == nil {
		pool = NewPool()
	}
	return &Generator{
		completer: completer,
		ledger:    ledger,
		pool:      pool,
		opts:      opts,
		randFloat: rand.Float64,
	}
}

// Generate resolves one request to a quote. Ordinary exhaustion never
// returns an error: the worst case degrades to a classic pool entry.
// The only error is ErrNotConfigured.
func (g *Generator) Generate(ctx context.Context, req types.GenerationRequest) (Result, error) {
	if g.completer == nil {
		return Result{}, ErrNotConfigured
	}

	// Mixed requests without a search term sometimes short-circuit to the
	// classic pool; a drained pool falls through to generation.
	if req.Source == types.SourceMixed && req.SearchTerm == "" && g.randFloat() < g.opts.ClassicProbability {
		if q, ok := g.pool.FirstUnused(ctx, g.ledger); ok {
			slog.Debug("served classic quote via short-circuit", "author", q.Author)
			return Result{Quote: q}, nil
		}
	}

	maxAttempts := maxAttemptsDefault
	if req.SearchKind == types.KindAuthor {
		maxAttempts = maxAttemptsAuthor
	}

	contextKey := req.ContextKey()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		slog.Debug("generation attempt", "attempt", attempt, "max_attempts", maxAttempts, "context", contextKey)

		raw, err := g.completer.Complete(ctx, BuildInstruction(req, attempt), UserPrompt)
		if err != nil {
			slog.Warn("provider call failed", "attempt", attempt, "error", err)
			continue
		}

		if strings.TrimSpace(raw) == SentinelNoMoreQuotes {
			return Result{Exhausted: true, Message: exhaustedMessage(req)}, nil
		}

		candidate := Extract(raw)
		if candidate == nil {
			slog.Debug("unparsable provider output", "attempt", attempt)
			continue
		}

		used, err := g.ledger.WasUsed(ctx, contextKey, candidate.Text)
		if err != nil {
			used = !g.opts.AssumeUnusedOnLedgerError
			slog.Warn("ledger lookup failed", "attempt", attempt, "assume_used", used, "error", err)
		}
		if used {
			slog.Debug("duplicate candidate, retrying", "attempt", attempt)
			continue
		}

		if err := g.ledger.MarkUsed(ctx, contextKey, candidate.Text, req.SourceKind()); err != nil {
			// Best effort: failing to record must not fail the generation.
			slog.Warn("ledger mark failed", "context", contextKey, "error", err)
		}
		return Result{Quote: *candidate}, nil
	}

	return g.fallbackClassic(ctx), nil
}

// fallbackClassic drains the pool in order, then degrades to an unmarked
// random entry once every classic quote has been served.
func (g *Generator) fallbackClassic(ctx context.Context) Result {
	if q, ok := g.pool.FirstUnused(ctx, g.ledger); ok {
		slog.Info("attempts exhausted, served classic quote", "author", q.Author)
		return Result{Quote: q}
	}
	q := g.pool.Random()
	slog.Info("classic pool drained, served repeat", "author", q.Author)
	return Result{Quote: q}
}

func exhaustedMessage(req types.GenerationRequest) string {
	if req.SearchTerm != "" {
		return fmt.Sprintf("No more unique quotes available from %s", req.SearchTerm)
	}
	return "No more unique quotes available"
}
