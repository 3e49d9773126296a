package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health", h.Health)

		// Anonymous callers get mixed-source quotes; signed-in callers get
		// their saved preference.
		r.Group(func(r chi.Router) {
			r.Use(OptionalUserMiddleware(h.verifier))
			r.Post("/quotes/generate", h.GenerateQuote)
		})

		r.Post("/quotes/image", h.QuoteImage)
		r.Post("/quotes/share", h.ShareQuote)

		// Service-to-service routes (shared key)
		r.Group(func(r chi.Router) {
			r.Use(ServiceKeyMiddleware(h.serviceKey))
			r.Post("/emails/quote", h.EmailQuote)
		})

		// Per-user routes (identity-provider tokens)
		r.Group(func(r chi.Router) {
			r.Use(UserAuthMiddleware(h.verifier))

			r.Get("/favorites", h.ListFavorites)
			r.Post("/favorites", h.AddFavorite)
			r.Delete("/favorites/{id}", h.DeleteFavorite)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.PutSettings)

			r.Get("/filters", h.ListFilters)
			r.Post("/filters", h.AddFilter)
			r.Delete("/filters/{id}", h.DeleteFilter)
		})
	})

	return r
}
