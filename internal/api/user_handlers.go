package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sergiomago/inspiro/internal/store"
	"github.com/sergiomago/inspiro/internal/types"
	"github.com/sergiomago/inspiro/internal/validation"
)

const (
	maxQuoteLength  = 1000
	maxAuthorLength = 200
	maxFilterLength = 100
)

// ListFavorites handles GET /api/v1/favorites
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user := MustUserFromContext(r.Context())

	favorites, err := h.store.ListFavorites(r.Context(), user.ID)
	if err != nil {
		slog.Error("list favorites failed", "user_id", user.ID, "error", err)
		MapStoreError(w, r, err)
		return
	}
	if favorites == nil {
		favorites = []types.Favorite{}
	}

	writeJSON(w, http.StatusOK, favorites)
}

// AddFavorite handles POST /api/v1/favorites
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user := MustUserFromContext(r.Context())

	var req types.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("quote", req.Quote))
	c.Add(validation.ValidateRequired("author", req.Author))
	c.Add(validation.ValidateMaxLength("quote", req.Quote, maxQuoteLength))
	c.Add(validation.ValidateMaxLength("author", req.Author, maxAuthorLength))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Favorite contains invalid fields", c.Errors())
		return
	}

	favorite, err := h.store.AddFavorite(r.Context(), user.ID, req.Quote, req.Author)
	if err != nil {
		slog.Error("add favorite failed", "user_id", user.ID, "error", err)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, favorite)
}

// DeleteFavorite handles DELETE /api/v1/favorites/{id}
func (h *Handler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	user := MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteFavorite(r.Context(), user.ID, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("delete favorite failed", "user_id", user.ID, "id", id, "error", err)
		}
		MapStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSettings handles GET /api/v1/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	user := MustUserFromContext(r.Context())

	settings, err := h.store.GetSettings(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A user that never saved settings gets the defaults.
			writeJSON(w, http.StatusOK, types.UserSettings{
				UserID:      user.ID,
				Frequency:   "daily",
				QuoteSource: string(types.SourceMixed),
			})
			return
		}
		slog.Error("get settings failed", "user_id", user.ID, "error", err)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// PutSettings handles PUT /api/v1/settings
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	user := MustUserFromContext(r.Context())

	var req types.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateOneOf("frequency", req.Frequency, "daily", "twice-daily"))
	c.Add(validation.ValidateOneOf("quote_source", req.QuoteSource, "human", "ai", "mixed"))
	c.Add(validation.ValidateHourSlot("time1", req.Time1))
	c.Add(validation.ValidateHourSlot("time2", req.Time2))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Settings contain invalid fields", c.Errors())
		return
	}

	if req.Frequency == "" {
		req.Frequency = "daily"
	}
	if req.QuoteSource == "" {
		req.QuoteSource = string(types.SourceMixed)
	}
	req.UserID = user.ID

	if err := h.store.UpsertSettings(r.Context(), req); err != nil {
		slog.Error("upsert settings failed", "user_id", user.ID, "error", err)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// ListFilters handles GET /api/v1/filters
func (h *Handler) ListFilters(w http.ResponseWriter, r *http.Request) {
	user := MustUserFromContext(r.Context())

	filters, err := h.store.ListFilters(r.Context(), user.ID)
	if err != nil {
		slog.Error("list filters failed", "user_id", user.ID, "error", err)
		MapStoreError(w, r, err)
		return
	}
	if filters == nil {
		filters = []types.SavedFilter{}
	}

	writeJSON(w, http.StatusOK, filters)
}

// AddFilter handles POST /api/v1/filters
func (h *Handler) AddFilter(w http.ResponseWriter, r *http.Request) {
	user := MustUserFromContext(r.Context())

	var req types.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("filter_text", req.FilterText))
	c.Add(validation.ValidateMaxLength("filter_text", req.FilterText, maxFilterLength))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Filter contains invalid fields", c.Errors())
		return
	}

	filter, err := h.store.AddFilter(r.Context(), user.ID, req.FilterText)
	if err != nil {
		if !errors.Is(err, store.ErrFilterLimit) {
			slog.Error("add filter failed", "user_id", user.ID, "error", err)
		}
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, filter)
}

// DeleteFilter handles DELETE /api/v1/filters/{id}
func (h *Handler) DeleteFilter(w http.ResponseWriter, r *http.Request) {
	user := MustUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteFilter(r.Context(), user.ID, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("delete filter failed", "user_id", user.ID, "id", id, "error", err)
		}
		MapStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
