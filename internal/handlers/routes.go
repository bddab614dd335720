package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers groups everything the router serves
type Handlers struct {
	Auth       *AuthHandler
	Words      *WordHandler
	Scores     *ScoreHandler
	Middleware *Middleware
	DB         Pinger
}

// NewRouter registers every API route and wraps the mux with the shared
// middleware stack.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()
	m := h.Middleware

	mux.HandleFunc("GET /words/daily", h.Words.Daily)
	mux.HandleFunc("GET /words/level/{level}", h.Words.ForLevel)

	mux.HandleFunc("POST /login", m.RateLimit(h.Auth.Login))
	mux.HandleFunc("POST /register", m.RateLimit(h.Auth.Register))

	mux.HandleFunc("POST /update", m.OptionalAuth(h.Scores.Update))
	mux.HandleFunc("GET /userInfo", h.Scores.UserInfo)
	mux.HandleFunc("GET /leaderboard", h.Scores.Leaderboard)

	mux.HandleFunc("GET /health", h.health)

	var handler http.Handler = mux
	handler = Logging(handler)
	handler = middleware.Recoverer(handler)
	handler = middleware.RealIP(handler)
	handler = middleware.RequestID(handler)
	return handler
}

func (h Handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			respondWithError(w, http.StatusServiceUnavailable, "unhealthy", "Health check failed", err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
