// Package items is the HTTP surface for kaumono shopping/TODO items.
// Creation and listing are addressed by category; every other operation
// resolves the category from the stored item, so a caller can never
// smuggle in a category it belongs to while touching someone else's item.
package items

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
	apierr "github.com/tacar/listhub/internal/app/features/errors"
	itemstore "github.com/tacar/listhub/internal/app/store/items"
	"github.com/tacar/listhub/internal/domain/models"
)

// ItemStore is the persistence surface the handlers need. *itemstore.Store
// satisfies it; tests use an in-memory fake.
type ItemStore interface {
	Create(ctx context.Context, it models.Item) (models.Item, error)
	GetByID(ctx context.Context, id models.ItemID) (models.Item, error)
	ListByCategory(ctx context.Context, catID models.CategoryID) ([]models.Item, error)
	Update(ctx context.Context, id models.ItemID, upd itemstore.Update) error
	SetDone(ctx context.Context, id models.ItemID, done bool) error
	Delete(ctx context.Context, id models.ItemID) (int64, error)
}

type Handler struct {
	Access *access.Service
	Items  ItemStore
	Log    *zap.Logger
}

func NewHandler(svc *access.Service, items ItemStore, logger *zap.Logger) *Handler {
	return &Handler{Access: svc, Items: items, Log: logger}
}

func itemID(w http.ResponseWriter, r *http.Request) (models.ItemID, bool) {
	id, err := models.ParseItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		apierr.WriteError(w, http.StatusNotFound, "not found")
		return models.ItemID{}, false
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
