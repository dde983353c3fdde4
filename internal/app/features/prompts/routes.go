package prompts

import (
	"github.com/go-chi/chi/v5"

	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/domain/models"
)

// CategoryRoutes returns the category-scoped prompt routes. Mounted at
// /api/{app}/categories/{categoryID}/prompts, answering only in the
// prompt namespace.
func CategoryRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.AppOnly(models.AppPrompt))
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	return r
}

// Routes returns the prompt-scoped routes. Mounted at /api/{app}/prompts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.AppOnly(models.AppPrompt))
	r.Get("/shared", h.ServeShared)
	r.Route("/{promptID}", func(r chi.Router) {
		r.Get("/", h.ServeGet)
		r.Put("/", h.ServeUpdate)
		r.Post("/share", h.ServeSetShared)
		r.Post("/use", h.ServeUse)
		r.Post("/report", h.ServeReport)
		r.Delete("/", h.ServeDelete)
	})
	return r
}

// AdminRoutes returns the moderation routes. Mounted at
// /api/{app}/admin/prompts.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.AppOnly(models.AppPrompt))
	r.Get("/reports", h.ServeAdminReports)
	r.Post("/reports/{reportID}/resolve", h.ServeAdminResolve)
	r.Delete("/{promptID}/share", h.ServeAdminUnshare)
	return r
}
