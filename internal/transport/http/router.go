package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"puzzle-service/internal/app"
)

// NewRouter mounts the REST API and the websocket endpoint.
func NewRouter(service *app.PuzzleService) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	api := NewAPIHandler(service)
	r.Route("/api", func(r chi.Router) {
		// Websocket connections outlive this bound, so it stays on the API group.
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)
		r.Get("/menu", api.Menu)
		r.Post("/identity", api.SignIn)
		r.Delete("/identity", api.SignOut)
		r.Get("/score", api.Score)
		r.Put("/credential", api.SetCredential)
		r.Get("/session/{id}", api.Session)
	})

	r.Get("/ws", NewWSHandler(service).ServeWS)
	return r
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

type errorPayload struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorPayload{Message: message})
}
