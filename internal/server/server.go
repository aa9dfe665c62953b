// Package server is the HTTP presentation surface of the dashboard. It
// owns session plumbing and request decoding; every data decision lives
// in the service layer.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ivanoskov/gasto_efectivo/internal/charts"
	"github.com/ivanoskov/gasto_efectivo/internal/config"
)

type Server struct {
	cfg      *config.Config
	sessions *sessionRegistry
	charts   *charts.Generator
}

func New(cfg *config.Config) *Server {
	return &Server{
		cfg:      cfg,
		sessions: newSessionRegistry(),
		charts:   charts.NewGenerator(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Post("/auth/signup", s.handleSignUp)
	r.Post("/auth/signin", s.handleSignIn)
	r.Post("/auth/signout", s.handleSignOut)

	r.Route("/api", func(api chi.Router) {
		api.Use(s.withSession)

		api.Get("/categories", s.handleListCategories)
		api.Post("/categories", s.handleAddCategory)
		api.Delete("/categories/{id}", s.handleDeleteCategory)

		api.Get("/budget", s.handleGetBudget)
		api.Put("/budget", s.handleSetBudget)
		api.Delete("/budget/{id}", s.handleDeleteBudget)

		api.Get("/expenses", s.handleListExpenses)
		api.Post("/expenses", s.handleAddExpense)
		api.Delete("/expenses/{id}", s.handleDeleteExpense)

		api.Get("/dashboard", s.handleDashboard)
		api.Get("/report", s.handleReport)
		api.Get("/report/categories.png", s.handleCategoryChart)
		api.Get("/report/daily.png", s.handleDailyChart)
	})

	return r
}

func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.cfg.ListenAddr, s.Router())
}

type contextKey struct{}

var sessionKey contextKey

// withSession resolves the bearer token to a session entry. Every /api
// request runs against exactly one user's session-scoped tracker.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := s.sessions.get(bearerToken(r))
		if entry == nil {
			respondError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, entry)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return token
	}
	return ""
}

func entryFrom(r *http.Request) *sessionEntry {
	entry, _ := r.Context().Value(sessionKey).(*sessionEntry)
	return entry
}
