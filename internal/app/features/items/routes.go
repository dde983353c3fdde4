package items

import (
	"github.com/go-chi/chi/v5"

	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/domain/models"
)

// CategoryRoutes returns the category-scoped item routes. Mounted at
// /api/{app}/categories/{categoryID}/items, answering only in the
// kaumono namespace.
func CategoryRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.AppOnly(models.AppKaumono))
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	return r
}

// Routes returns the item-scoped routes. Mounted at /api/{app}/items.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.AppOnly(models.AppKaumono))
	r.Route("/{itemID}", func(r chi.Router) {
		r.Get("/", h.ServeGet)
		r.Put("/", h.ServeUpdate)
		r.Post("/done", h.ServeSetDone)
		r.Delete("/", h.ServeDelete)
	})
	return r
}
