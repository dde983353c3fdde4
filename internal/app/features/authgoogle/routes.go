package authgoogle

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the Google OAuth endpoints.
// Mounted at /auth.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{app}/google", h.ServeLogin)
	r.Get("/google/callback", h.ServeCallback)
	return r
}
