package invites

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for invite redemption. Mounted at
// /api/{app}/invites behind the signed-in middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/accept", h.ServeAccept)
	r.Get("/{token}", h.ServeAcceptLink)
	return r
}
