// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ayush/postboard/backend/internal/auth"
	"github.com/ayush/postboard/backend/internal/httpx"
	"github.com/ayush/postboard/backend/internal/logging"
	"github.com/ayush/postboard/backend/internal/middleware"
	"github.com/ayush/postboard/backend/internal/posts"
	"github.com/ayush/postboard/backend/internal/store"
)

type Deps struct {
	Store       store.Store
	Hasher      auth.Hasher
	Tokens      *auth.Tokens
	Log         logging.Logger
	CORSOrigins []string
	// AccessLog enables chi's request logger.
	AccessLog bool
}

func NewRouter(d Deps) http.Handler {
	authHandler := auth.NewHandler(d.Store, d.Hasher, d.Tokens, d.Log)
	postHandler := posts.NewHandler(d.Store, d.Log)
	requireToken := middleware.RequireToken(d.Tokens, d.Log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if d.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", httpx.Handle(d.Log, authHandler.Register))
		r.Post("/login", httpx.Handle(d.Log, authHandler.Login))
		r.With(requireToken).Post("/logout", httpx.Handle(d.Log, authHandler.Logout))
	})

	r.With(requireToken).Post("/posts", httpx.Handle(d.Log, postHandler.Create))

	return r
}
