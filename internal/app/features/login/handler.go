// Package login provides the trust login used in development and by
// clients that carry their own identity-provider token validation at the
// edge. It accepts the caller's identity as given, upserts the mirror
// user, and opens a session. Disabled unless configuration turns it on.
package login

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/app/store/users"
	"github.com/tacar/listhub/internal/app/system/auth"
	"github.com/tacar/listhub/internal/app/system/timeouts"
	"github.com/tacar/listhub/internal/domain/models"
)

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Enabled    bool
	Log        *zap.Logger
}

func NewHandler(users *userstore.Store, sessionMgr *auth.SessionManager, enabled bool, logger *zap.Logger) *Handler {
	return &Handler{Users: users, SessionMgr: sessionMgr, Enabled: enabled, Log: logger}
}

type loginRequest struct {
	ExternalID  string `json:"externalId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type loginResponse struct {
	ID          string `json:"id"`
	App         string `json:"app"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// ServeLogin handles POST /auth/login/{app}.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.Enabled {
		http.NotFound(w, r)
		return
	}
	app := chi.URLParam(r, "app")
	if !models.ValidApp(app) {
		apierr.WriteError(w, http.StatusNotFound, "unknown app")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	req.ExternalID = strings.TrimSpace(req.ExternalID)
	if req.ExternalID == "" {
		apierr.RenderBadRequest(w, "externalId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetOrCreate(ctx, app, req.ExternalID, req.DisplayName, req.Email)
	if err != nil {
		apierr.RenderInternal(w, h.Log, "login.upsert", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		App:   app,
		Name:  u.DisplayName,
		Email: u.Email,
	}); err != nil {
		apierr.RenderInternal(w, h.Log, "login.session", err)
		return
	}

	h.Log.Info("trust login",
		zap.String("user_id", u.ID.Hex()),
		zap.String("app", app))

	apierr.WriteJSON(w, http.StatusOK, loginResponse{
		ID:          u.ID.Hex(),
		App:         app,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	})
}
