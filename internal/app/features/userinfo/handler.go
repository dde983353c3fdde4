// Package userinfo reports the signed-in user's mirror record.
package userinfo

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/app/policy/adminpolicy"
	userstore "github.com/tacar/listhub/internal/app/store/users"
	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/app/system/timeouts"
	"github.com/tacar/listhub/internal/domain/models"
)

type Handler struct {
	Users  *userstore.Store
	Admins *adminpolicy.Policy
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, admins *adminpolicy.Policy, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Admins: admins, Log: logger}
}

type userResponse struct {
	ID          string `json:"id"`
	App         string `json:"app"`
	ExternalID  string `json:"externalId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// ServeMe handles GET /api/{app}/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, res.UserID)
	if err != nil {
		apierr.RenderError(w, h.Log, "userinfo.me", err)
		return
	}

	apierr.WriteJSON(w, http.StatusOK, userResponse{
		ID:          u.ID.Hex(),
		App:         u.AppID,
		ExternalID:  u.ExternalID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	})
}

// ServeAdminList handles GET /api/{app}/admin/users: every mirror record
// in the app namespace, allow-listed admins only.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, h.Admins)
	if !res.OK {
		return
	}
	app := chi.URLParam(r, "app")
	if !models.ValidApp(app) {
		apierr.WriteError(w, http.StatusNotFound, "unknown app")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.ListByApp(ctx, app)
	if err != nil {
		apierr.RenderError(w, h.Log, "userinfo.admin_list", err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{
			ID:          u.ID.Hex(),
			App:         u.AppID,
			ExternalID:  u.ExternalID,
			DisplayName: u.DisplayName,
			Email:       u.Email,
		})
	}
	apierr.WriteJSON(w, http.StatusOK, out)
}
