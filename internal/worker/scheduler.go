// Package worker runs the scheduled quote email delivery loop.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/sergiomago/inspiro/internal/identity"
	"github.com/sergiomago/inspiro/internal/mailer"
	"github.com/sergiomago/inspiro/internal/quote"
	"github.com/sergiomago/inspiro/internal/types"
)

// ScheduleStore lists delivery settings due at a given hour.
// Implemented by the SQLite store.
type ScheduleStore interface {
	ListDueSettings(ctx context.Context, hour string) ([]types.UserSettings, error)
}

// Generator resolves one generation request to a quote.
// Implemented by quote.Generator.
type Generator interface {
	Generate(ctx context.Context, req types.GenerationRequest) (quote.Result, error)
}

// EmailScheduler delivers quote emails to users whose configured delivery
// times match the current hour.
type EmailScheduler struct {
	store     ScheduleStore
	generator Generator
	verifier  identity.Verifier
	sender    mailer.Sender
	interval  time.Duration
	now       func() time.Time
}

// NewEmailScheduler creates a scheduler that checks for due deliveries
// every interval.
func NewEmailScheduler(store ScheduleStore, g Generator, v identity.Verifier, m mailer.Sender, interval time.Duration) *EmailScheduler {
	return &EmailScheduler{
		store:     store,
		generator: g,
		verifier:  v,
		sender:    m,
		interval:  interval,
		now:       time.Now,
	}
}

// Run starts the scheduler loop. Blocks until ctx is cancelled.
//
// The current hour is processed immediately so a restart inside a delivery
// window does not skip that window.
func (s *EmailScheduler) Run(ctx context.Context) {
	slog.Info("email scheduler started",
		"component", "worker",
		"worker", "email-scheduler",
		"interval", s.interval.String(),
	)

	s.ProcessDue(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("email scheduler stopped",
				"component", "worker",
				"worker", "email-scheduler",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			s.ProcessDue(ctx)
		}
	}
}

// ProcessDue delivers one quote email to every user due at the current hour.
// Per-user failures are logged and skipped; one bad address must not block
// the rest of the batch.
func (s *EmailScheduler) ProcessDue(ctx context.Context) {
	hour := s.now().Format("15") + ":00"

	settings, err := s.store.ListDueSettings(ctx, hour)
	if err != nil {
		slog.Error("due settings lookup failed",
			"component", "worker",
			"hour", hour,
			"error", err,
		)
		return
	}
	if len(settings) == 0 {
		return
	}

	slog.Info("processing due quote emails",
		"component", "worker",
		"hour", hour,
		"users", len(settings),
	)

	for _, setting := range settings {
		if err := s.deliverOne(ctx, setting); err != nil {
			slog.Error("quote email delivery failed",
				"component", "worker",
				"user_id", setting.UserID,
				"error", err,
			)
			continue
		}
		slog.Info("quote email delivered",
			"component", "worker",
			"user_id", setting.UserID,
		)
	}
}

func (s *EmailScheduler) deliverOne(ctx context.Context, setting types.UserSettings) error {
	source, err := types.ParseSourcePreference(setting.QuoteSource)
	if err != nil {
		// A bad stored preference degrades to mixed rather than blocking
		// the delivery.
		source = types.SourceMixed
	}

	result, err := s.generator.Generate(ctx, types.GenerationRequest{
		Source:     source,
		SearchKind: types.KindTopic,
	})
	if err != nil {
		return err
	}

	q := result.Quote
	if result.Exhausted {
		// Random requests virtually never exhaust, but a classic quote is
		// still better than an empty inbox.
		q = quote.NewPool().Random()
	}

	user, err := s.verifier.UserByID(ctx, setting.UserID)
	if err != nil {
		return err
	}

	html, err := mailer.RenderQuoteEmail(q)
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, user.Email, mailer.Subject, html)
}
