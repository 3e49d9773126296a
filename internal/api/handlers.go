package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sergiomago/inspiro/internal/identity"
	"github.com/sergiomago/inspiro/internal/imagecard"
	"github.com/sergiomago/inspiro/internal/mailer"
	"github.com/sergiomago/inspiro/internal/quote"
	"github.com/sergiomago/inspiro/internal/store"
	"github.com/sergiomago/inspiro/internal/types"
	"github.com/sergiomago/inspiro/internal/validation"
)

// Generator resolves one generation request to a quote.
type Generator interface {
	Generate(ctx context.Context, req types.GenerationRequest) (quote.Result, error)
}

// Handler implements the API handlers
type Handler struct {
	store      store.Store
	generator  Generator
	verifier   identity.Verifier
	sender     mailer.Sender
	serviceKey string
	version    string
	model      string
}

// NewHandler creates a new Handler.
func NewHandler(s store.Store, g Generator, v identity.Verifier, m mailer.Sender, serviceKey, version, model string) *Handler {
	return &Handler{
		store:      s,
		generator:  g,
		verifier:   v,
		sender:     m,
		serviceKey: serviceKey,
		version:    version,
		model:      model,
	}
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.CountUsedQuotes(r.Context())
	if err != nil {
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := types.HealthResponse{
		Status:     "healthy",
		Version:    h.version,
		Model:      h.model,
		UsedQuotes: count,
	}

	writeJSON(w, http.StatusOK, resp)
}

// GenerateQuote handles POST /api/v1/quotes/generate
func (h *Handler) GenerateQuote(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	// Signed-in callers that omit source fall back to their saved preference.
	if req.Source == "" {
		if user, err := UserFromContext(r.Context()); err == nil {
			if settings, err := h.store.GetSettings(r.Context(), user.ID); err == nil {
				req.Source = settings.QuoteSource
			}
		}
	}

	source, err := types.ParseSourcePreference(req.Source)
	if err != nil {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", []validation.ValidationError{
			{Field: "source", Message: "must be one of: human, ai, mixed"},
		})
		return
	}
	kind, err := types.ParseSearchKind(req.SearchKind)
	if err != nil {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", []validation.ValidationError{
			{Field: "search_kind", Message: "must be one of: topic, author, keyword"},
		})
		return
	}

	result, err := h.generator.Generate(r.Context(), types.GenerationRequest{
		Source:     source,
		SearchTerm: req.SearchTerm,
		SearchKind: kind,
	})
	if err != nil {
		if errors.Is(err, quote.ErrNotConfigured) {
			WriteProblem(w, r, http.StatusServiceUnavailable, "Quote generation is not configured")
			return
		}
		slog.Error("generation failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if result.Exhausted {
		writeJSON(w, http.StatusOK, types.GenerateResponse{
			Exhausted: true,
			Message:   result.Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, types.GenerateResponse{
		Quote:  result.Quote.Text,
		Author: result.Quote.Author,
	})
}

// QuoteImage handles POST /api/v1/quotes/image
func (h *Handler) QuoteImage(w http.ResponseWriter, r *http.Request) {
	var req types.ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("quote", req.Quote))
	c.Add(validation.ValidateRequired("author", req.Author))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Quote and author are required", c.Errors())
		return
	}

	dataURL, err := imagecard.Render(types.Quote{Text: req.Quote, Author: req.Author})
	if err != nil {
		slog.Error("quote card render failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Failed to generate quote image")
		return
	}

	writeJSON(w, http.StatusOK, types.ImageResponse{
		ImageData: dataURL,
		Quote:     req.Quote,
		Author:    req.Author,
	})
}

// ShareQuote handles POST /api/v1/quotes/share
func (h *Handler) ShareQuote(w http.ResponseWriter, r *http.Request) {
	var req types.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("platform", req.Platform))
	c.Add(validation.ValidateRequired("quote", req.Quote))
	c.Add(validation.ValidateRequired("author", req.Author))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Platform, quote and author are required", c.Errors())
		return
	}

	q := types.Quote{Text: req.Quote, Author: req.Author}
	cardURL, err := imagecard.Render(q)
	if err != nil {
		slog.Error("quote card render failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Failed to generate quote image")
		return
	}

	shareURL, err := imagecard.ShareLink(req.Platform, q, cardURL)
	if err != nil {
		switch {
		case errors.Is(err, imagecard.ErrManualShare):
			WriteProblem(w, r, http.StatusUnprocessableEntity, "Instagram has no web share endpoint; download the image and share it manually")
		case errors.Is(err, imagecard.ErrUnknownPlatform):
			WriteProblemWithErrors(w, r, "Unsupported platform", []validation.ValidationError{
				{Field: "platform", Message: "must be one of: facebook, twitter, linkedin"},
			})
		default:
			WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusOK, types.ShareResponse{URL: shareURL})
}

// EmailQuote handles POST /api/v1/emails/quote
func (h *Handler) EmailQuote(w http.ResponseWriter, r *http.Request) {
	var req types.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("user_id", req.UserID))
	c.Add(validation.ValidateRequired("quote", req.Quote))
	c.Add(validation.ValidateRequired("author", req.Author))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "User, quote and author are required", c.Errors())
		return
	}

	user, err := h.verifier.UserByID(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			WriteProblem(w, r, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("user lookup failed", "user_id", req.UserID, "error", err)
		WriteProblem(w, r, http.StatusBadGateway, "Identity provider unavailable")
		return
	}

	html, err := mailer.RenderQuoteEmail(types.Quote{Text: req.Quote, Author: req.Author})
	if err != nil {
		slog.Error("email render failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := h.sender.Send(r.Context(), user.Email, mailer.Subject, html); err != nil {
		slog.Error("email send failed", "user_id", req.UserID, "error", err)
		WriteProblem(w, r, http.StatusBadGateway, "Email delivery failed")
		return
	}

	slog.Info("quote email sent", "user_id", req.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
