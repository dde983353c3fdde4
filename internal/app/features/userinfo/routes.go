package userinfo

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the current-user endpoint. Mounted at
// /api/{app}.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/me", h.ServeMe)
	return r
}

// AdminRoutes returns the admin user-listing routes. Mounted at
// /api/{app}/admin/users.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeAdminList)
	return r
}
