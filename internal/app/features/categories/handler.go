// Package categories is the HTTP surface over access.Service: category
// CRUD, member listing and removal, invite issuance, and leave. Every
// operation resolves the caller through the session gate and delegates
// the authorization decision to the service.
package categories

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/domain/models"
)

type Handler struct {
	Access *access.Service
	// BaseURL is the public web origin used to build shareable invite
	// links. Empty in tests; the link fields are then omitted.
	BaseURL string
	Log     *zap.Logger
}

func NewHandler(svc *access.Service, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{Access: svc, BaseURL: baseURL, Log: logger}
}

// categoryID parses the {categoryID} URL segment. Writes a 404 and
// returns ok=false on malformed IDs; a bad hex string names nothing.
func categoryID(w http.ResponseWriter, r *http.Request) (models.CategoryID, bool) {
	id, err := models.ParseCategoryID(chi.URLParam(r, "categoryID"))
	if err != nil {
		apierr.WriteError(w, http.StatusNotFound, "not found")
		return models.CategoryID{}, false
	}
	return id, true
}

// userID parses the {userID} URL segment, same contract as categoryID.
func userID(w http.ResponseWriter, r *http.Request) (models.UserID, bool) {
	id, err := models.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		apierr.WriteError(w, http.StatusNotFound, "not found")
		return models.UserID{}, false
	}
	return id, true
}

type categoryResponse struct {
	ID        string `json:"id"`
	App       string `json:"app"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	Members   int    `json:"memberCount"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toCategoryResponse(c models.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID.Hex(),
		App:       c.AppID,
		Name:      c.Name,
		OwnerID:   c.OwnerID.Hex(),
		Members:   len(c.MemberIDs),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
