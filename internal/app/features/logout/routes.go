package logout

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for logout. Mounted at /auth/logout.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeLogout)
	return r
}
