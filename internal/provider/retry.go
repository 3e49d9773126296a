package provider

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	backoffBase = 1 * time.Second
	backoffCap  = 5 * time.Second
)

// Compile-time interface check
var _ Completer = (*Retrying)(nil)

// Retrying decorates a Completer with capped exponential backoff: waits of
// 1s, 2s, 4s... capped at 5s between attempts. After maxAttempts failures
// the last error propagates.
type Retrying struct {
	inner       Completer
	maxAttempts int
	base        time.Duration
	cap         time.Duration
}

// NewRetrying wraps inner with up to maxAttempts tries per call.
func NewRetrying(inner Completer, maxAttempts int) *Retrying {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retrying{inner: inner, maxAttempts: maxAttempts, base: backoffBase, cap: backoffCap}
}

// Complete calls the inner Completer, retrying transient failures.
func (r *Retrying) Complete(ctx context.Context, system, user string) (string, error) {
	backoff := retry.WithMaxRetries(uint64(r.maxAttempts-1),
		retry.WithCappedDuration(r.cap, retry.NewExponential(r.base)))

	var out string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		text, err := r.inner.Complete(ctx, system, user)
		if err != nil {
			return retry.RetryableError(err)
		}
		out = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
