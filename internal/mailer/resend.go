package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendAPIURL = "https://api.resend.com/emails"

// Compile-time interface check
var _ Sender = (*ResendClient)(nil)

// Config holds settings for the Resend client.
type Config struct {
	APIKey string
	// From is the verified sender, e.g. `Inspiro <quotes@inspiro.app>`.
	From    string
	BaseURL string // overridden in tests
	Timeout time.Duration
}

// ResendClient sends email through the Resend HTTP API.
type ResendClient struct {
	apiKey     string
	from       string
	url        string
	httpClient *http.Client
}

// NewResendClient creates a Resend-backed sender.
func NewResendClient(cfg Config) *ResendClient {
	url := cfg.BaseURL
	if url == "" {
		url = resendAPIURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &ResendClient{
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML email.
func (c *ResendClient) Send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("email API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
