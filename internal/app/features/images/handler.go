// Package images is the HTTP surface for ocrcsv page images: metadata
// registration, OCR text edits, CSV-row ordering, and the CSV export
// itself. Binaries live in external storage; handlers mint the storage
// key and hand it back to the uploader.
package images

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/domain/models"
)

// ImageStore is the persistence surface the handlers need.
// *imagestore.Store satisfies it; tests use an in-memory fake.
type ImageStore interface {
	Create(ctx context.Context, img models.Image) (models.Image, error)
	GetByID(ctx context.Context, id models.ImageID) (models.Image, error)
	ListByCategory(ctx context.Context, catID models.CategoryID) ([]models.Image, error)
	UpdateOCR(ctx context.Context, id models.ImageID, ocr string) error
	SetSortOrder(ctx context.Context, id models.ImageID, order int) error
	Delete(ctx context.Context, id models.ImageID) (int64, error)
}

type Handler struct {
	Access *access.Service
	Images ImageStore
	Log    *zap.Logger
}

func NewHandler(svc *access.Service, images ImageStore, logger *zap.Logger) *Handler {
	return &Handler{Access: svc, Images: images, Log: logger}
}

func imageID(w http.ResponseWriter, r *http.Request) (models.ImageID, bool) {
	id, err := models.ParseImageID(chi.URLParam(r, "imageID"))
	if err != nil {
		apierr.WriteError(w, http.StatusNotFound, "not found")
		return models.ImageID{}, false
	}
	return id, true
}

func categoryID(w http.ResponseWriter, r *http.Request) (models.CategoryID, bool) {
	id, err := models.ParseCategoryID(chi.URLParam(r, "categoryID"))
	if err != nil {
		apierr.WriteError(w, http.StatusNotFound, "not found")
		return models.CategoryID{}, false
	}
	return id, true
}
