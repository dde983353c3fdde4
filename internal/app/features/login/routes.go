package login

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the trust login endpoint. Mounted at
// /auth/login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/{app}", h.ServeLogin)
	return r
}
