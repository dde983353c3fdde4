package images

import (
	"github.com/go-chi/chi/v5"

	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/domain/models"
)

// CategoryRoutes returns the category-scoped image routes. Mounted at
// /api/{app}/categories/{categoryID}/images, answering only in the
// ocrcsv namespace.
func CategoryRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.AppOnly(models.AppOCRCSV))
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Put("/order", h.ServeReorder)
	r.Get("/csv", h.ServeCSV)
	return r
}

// Routes returns the image-scoped routes. Mounted at /api/{app}/images.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.AppOnly(models.AppOCRCSV))
	r.Route("/{imageID}", func(r chi.Router) {
		r.Get("/", h.ServeGet)
		r.Patch("/ocr", h.ServeUpdateOCR)
		r.Delete("/", h.ServeDelete)
	})
	return r
}
