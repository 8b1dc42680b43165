package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter builds the full control-plane mux: chi's standard
// Logger/Recoverer pair plus a permissive CORS policy so a browser-based
// dashboard can hit /solve directly.
func NewRouter(log zerolog.Logger) http.Handler {
	h := NewHandlers(log)
	h.StartGC(nil)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	h.RegisterRoutes(r)
	return r
}
