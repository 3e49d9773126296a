package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Compile-time interface check
var _ Verifier = (*HTTPVerifier)(nil)

// Config holds settings for the HTTP verifier.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPVerifier talks to a GoTrue-style auth endpoint: end-user tokens are
// resolved via /auth/v1/user, admin lookups via /auth/v1/admin/users/{id}.
type HTTPVerifier struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPVerifier creates a verifier for the configured auth provider.
func NewHTTPVerifier(cfg Config) *HTTPVerifier {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &HTTPVerifier{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// UserFromToken resolves an end-user access token.
func (v *HTTPVerifier) UserFromToken(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrUnauthorized
	}
	return v.getUser(ctx, v.baseURL+"/auth/v1/user", "Bearer "+token)
}

// UserByID looks up an account with service credentials.
func (v *HTTPVerifier) UserByID(ctx context.Context, id string) (User, error) {
	return v.getUser(ctx, v.baseURL+"/auth/v1/admin/users/"+id, "Bearer "+v.apiKey)
}

func (v *HTTPVerifier) getUser(ctx context.Context, url, authorization string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return User{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("apikey", v.apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return User{}, ErrUnauthorized
	case http.StatusNotFound:
		return User{}, ErrUserNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return User{}, fmt.Errorf("auth provider error (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return User{}, fmt.Errorf("auth provider returned user without id")
	}

	return user, nil
}
