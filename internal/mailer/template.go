package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/sergiomago/inspiro/internal/types"
)

// Subject is the subject line used for quote emails.
const Subject = "Your Daily Inspiration from Inspiro"

var quoteEmailTmpl = template.Must(template.New("quote-email").Parse(`<!DOCTYPE html>
<html>
  <body style="margin: 0; padding: 0; background-color: #f6f6f6; font-family: Georgia, 'Times New Roman', serif;">
    <div style="max-width: 600px; margin: 0 auto; padding: 40px 20px;">
      <div style="background-color: #ffffff; border-radius: 12px; padding: 40px; text-align: center;">
        <h1 style="color: #2d2d2d; font-size: 24px; margin: 0 0 30px;">Your Daily Quote from Inspiro</h1>
        <blockquote style="font-size: 22px; font-style: italic; color: #444444; line-height: 1.5; margin: 0 0 20px;">
          &ldquo;{{.Text}}&rdquo;
        </blockquote>
        <p style="font-size: 16px; color: #888888; margin: 0 0 30px;">&mdash; {{.Author}}</p>
        <p style="font-size: 14px; color: #aaaaaa; margin: 0;">Stay inspired,<br>The Inspiro Team</p>
      </div>
    </div>
  </body>
</html>`))

// RenderQuoteEmail renders the HTML body for a quote email.
func RenderQuoteEmail(q types.Quote) (string, error) {
	var buf strings.Builder
	if err := quoteEmailTmpl.Execute(&buf, q); err != nil {
		return "", fmt.Errorf("render quote email: %w", err)
	}
	return buf.String(), nil
}
