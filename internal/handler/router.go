package handler

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the API router. When webDir exists it is served at the root.
func NewRouter(h *EventHandler, webDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger)
	r.Use(CORS)

	r.Get("/health", HealthCheck)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Get("/{id}", h.GetEvent)
		r.Post("/{id}/enrollment", h.Enroll)
		r.Delete("/{id}/enrollment", h.CancelEnrollment)
		r.Post("/{id}/payment", h.Pay)
	})

	r.Post("/users", h.Register)

	r.Route("/session", func(r chi.Router) {
		r.Post("/", h.Login)
		r.Get("/", h.Session)
		r.Delete("/", h.Logout)
	})

	r.Route("/me", func(r chi.Router) {
		r.Patch("/", h.Rename)
		r.Get("/events", h.MyEvents)
	})

	if webDir != "" {
		if info, err := os.Stat(webDir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(webDir)))
		}
	}
	return r
}
