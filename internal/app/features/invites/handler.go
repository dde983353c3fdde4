// Package invites is the redemption side of the invitation flow. Issuance
// lives with the categories feature; this package only turns a shared
// token into a membership.
package invites

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/app/system/ratelimit"
	"github.com/tacar/listhub/internal/app/system/timeouts"
)

type Handler struct {
	Access  *access.Service
	Limiter *ratelimit.InviteLimiter
	Log     *zap.Logger
}

func NewHandler(svc *access.Service, limiter *ratelimit.InviteLimiter, logger *zap.Logger) *Handler {
	return &Handler{Access: svc, Limiter: limiter, Log: logger}
}

type acceptRequest struct {
	Token string `json:"token"`
}

type acceptResponse struct {
	CategoryID string `json:"categoryId"`
}

// ServeAccept handles POST /api/{app}/invites/accept. The caller joins
// the category the token names; redeeming while already a member
// succeeds with the same response.
func (h *Handler) ServeAccept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	h.accept(w, r, strings.TrimSpace(req.Token))
}

// ServeAcceptLink handles GET /api/{app}/invites/{token}, the web
// redemption flow behind shared invite links. Same semantics as
// ServeAccept, the token just arrives in the path.
func (h *Handler) ServeAcceptLink(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, chi.URLParam(r, "token"))
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request, token string) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	if h.Limiter != nil && !h.Limiter.Check(r) {
		apierr.WriteError(w, http.StatusTooManyRequests, "too many attempts, try again later")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	catID, err := h.Access.AcceptInvite(ctx, res.App, token, res.UserID)
	if err != nil {
		apierr.RenderError(w, h.Log, "invites.accept", err)
		return
	}
	if h.Limiter != nil {
		h.Limiter.Success(r)
	}

	h.Log.Info("invite redeemed",
		zap.String("category_id", catID.Hex()),
		zap.String("user_id", res.UserID.Hex()))

	apierr.WriteJSON(w, http.StatusOK, acceptResponse{CategoryID: catID.Hex()})
}
