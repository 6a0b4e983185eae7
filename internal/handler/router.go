package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig collects the handlers and options the router is built from.
type RouterConfig struct {
	Weddings    *WeddingHandler
	Auth        *AuthHandler
	AuthLimiter *RateLimiter
	// StaticDir, when non-empty, is served at the root.
	StaticDir string
}

// NewRouter builds the HTTP API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(CORS)                    // permissive CORS for demo

	r.Get("/health", HealthCheck)

	r.Route("/weddings", func(r chi.Router) {
		r.Get("/", cfg.Weddings.ListWeddings)
		r.Get("/countries", cfg.Weddings.ListCountries)
		r.Get("/{id}", cfg.Weddings.GetWedding)
		r.With(cfg.Auth.RequireAccount).Post("/{id}/register", cfg.Weddings.Register)
	})

	r.With(cfg.Auth.RequireAccount).Post("/registrations/{id}/cancel", cfg.Weddings.CancelRegistration)

	r.Route("/me", func(r chi.Router) {
		r.Use(cfg.Auth.RequireAccount)
		r.Get("/", cfg.Auth.Me)
		r.Get("/registrations", cfg.Weddings.MyRegistrations)
		r.Get("/dashboard", cfg.Weddings.Dashboard)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.AuthLimiter != nil {
				r.Use(cfg.AuthLimiter.Middleware)
			}
			r.Post("/signup", cfg.Auth.Signup)
			r.Post("/login", cfg.Auth.Login)
		})
		r.Post("/logout", cfg.Auth.Logout)
		r.Get("/session", cfg.Auth.Session)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
