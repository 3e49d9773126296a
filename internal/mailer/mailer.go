// Package mailer delivers quote emails through a hosted transactional
// email provider.
package mailer

import "context"

// Sender sends one HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}
