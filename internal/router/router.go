// Package router sets up all HTTP routes and middleware chains for the
// AquaPoint catalog API. It organizes routes into public and admin groups
// with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"aquapoint/internal/handlers"
	"aquapoint/internal/middleware"
	"aquapoint/internal/session"
)

// Options configures the router's cross-cutting behavior.
type Options struct {
	// CORSOrigin is the allowed browser origin for the dashboard and site.
	// Empty disables CORS headers.
	CORSOrigin string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. A session is loaded once per request; the
// admin group rejects requests without a valid admin session.
func New(sessions *session.Store, public *handlers.Public, admin *handlers.Admin, auth *handlers.Auth, media *handlers.Media, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if opts.CORSOrigin != "" {
		r.Use(middleware.CORS(opts.CORSOrigin))
	}

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Write endpoints open to anonymous traffic get their own limiters.
	inquiryLimiter := middleware.NewRateLimiter(10, time.Minute)
	loginLimiter := middleware.NewRateLimiter(5, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Public catalog.
		r.Get("/categories", public.Categories)
		r.Get("/categories/{slug}", public.CategoryBySlug)
		r.Get("/products", public.Products)
		r.Get("/products/{slug}", public.ProductBySlug)
		r.With(inquiryLimiter.Middleware).Post("/inquiry", public.Inquiry)

		// Authentication.
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)

			// Endpoints for sessions that may still be pending 2FA.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(sessions))
				r.Use(middleware.RequireSession)
				r.Get("/me", auth.Me)
				r.Post("/totp/verify", auth.TOTPVerify)
			})
		})

		// Admin area — valid, 2FA-complete admin sessions only.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(sessions))
			r.Use(middleware.RequireAdmin)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", admin.ListProducts)
				r.Post("/", admin.CreateProduct)
				r.Post("/bulk", admin.BulkProducts)
				r.Put("/{id}", admin.UpdateProduct)
				r.Delete("/{id}", admin.DeleteProduct)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.ListCategories)
				r.Post("/", admin.CreateCategory)
				r.Put("/{id}", admin.UpdateCategory)
				r.Delete("/{id}", admin.DeleteCategory)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", media.List)
				r.Post("/", media.Upload)
				r.Delete("/{id}", media.Delete)
			})

			r.Get("/inquiries", admin.ListInquiries)

			r.Route("/totp", func(r chi.Router) {
				r.Post("/setup", auth.TOTPSetup)
				r.Post("/enable", auth.TOTPEnable)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
