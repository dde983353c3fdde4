package categories

import "github.com/go-chi/chi/v5"

// Resources holds the per-resource subrouters mounted under
// /{categoryID} so their paths share the category prefix. Nil entries
// are skipped.
type Resources struct {
	Items   chi.Router
	Images  chi.Router
	Prompts chi.Router
}

// Routes returns the category router. Mounted at /api/{app}/categories
// behind the signed-in middleware.
func Routes(h *Handler, res Resources) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Route("/{categoryID}", func(r chi.Router) {
		r.Get("/", h.ServeDetail)
		r.Patch("/", h.ServeRename)
		r.Delete("/", h.ServeDelete)
		r.Post("/invite", h.ServeInvite)
		r.Delete("/members/{userID}", h.ServeRemoveMember)
		r.Post("/leave", h.ServeLeave)

		if res.Items != nil {
			r.Mount("/items", res.Items)
		}
		if res.Images != nil {
			r.Mount("/images", res.Images)
		}
		if res.Prompts != nil {
			r.Mount("/prompts", res.Prompts)
		}
	})
	return r
}
