package categories

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/app/system/timeouts"
)

type inviteResponse struct {
	Token     string `json:"token"`
	WebURL    string `json:"webUrl,omitempty"`
	AppURL    string `json:"appUrl"`
	ExpiresAt string `json:"expiresAt"`
}

// ServeInvite handles POST /api/{app}/categories/{categoryID}/invite.
// Any member may issue; the fresh token replaces the previous one, so
// old links stop working the moment this returns.
func (h *Handler) ServeInvite(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.Access.GenerateInviteToken(ctx, id, res.UserID)
	if err != nil {
		apierr.RenderError(w, h.Log, "categories.invite", err)
		return
	}

	h.Log.Info("invite token issued",
		zap.String("category_id", id.Hex()),
		zap.String("user_id", res.UserID.Hex()))

	// The mobile apps register their namespace as a URI scheme, so
	// kaumono://invite/{token} opens the native redemption screen.
	out := inviteResponse{
		Token:     inv.Token,
		AppURL:    res.App + "://invite/" + inv.Token,
		ExpiresAt: inv.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if h.BaseURL != "" {
		out.WebURL = h.BaseURL + "/invite/" + inv.Token
	}
	apierr.WriteJSON(w, http.StatusOK, out)
}

// ServeRemoveMember handles
// DELETE /api/{app}/categories/{categoryID}/members/{userID}. Owner only.
func (h *Handler) ServeRemoveMember(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	id, ok := categoryID(w, r)
	if !ok {
		return
	}
	target, ok := userID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Access.RemoveMember(ctx, id, target, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, "categories.remove_member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeLeave handles POST /api/{app}/categories/{categoryID}/leave.
func (h *Handler) ServeLeave(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Access.Leave(ctx, id, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, "categories.leave", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
