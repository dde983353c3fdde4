package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/app/system/htmlsanitize"
	"github.com/tacar/listhub/internal/app/system/timeouts"
)

type createRequest struct {
	Name string `json:"name"`
}

type renameRequest struct {
	Name string `json:"name"`
}

// ServeCreate handles POST /api/{app}/categories.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	name := htmlsanitize.StripTags(strings.TrimSpace(req.Name))
	if name == "" {
		apierr.RenderBadRequest(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Access.Create(ctx, res.App, name, res.UserID)
	if err != nil {
		apierr.RenderError(w, h.Log, "categories.create", err)
		return
	}

	cat, _, err := h.Access.Detail(ctx, id, res.UserID)
	if err != nil {
		apierr.RenderError(w, h.Log, "categories.create.read", err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, toCategoryResponse(cat))
}

// ServeList handles GET /api/{app}/categories.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cats, err := h.Access.ListForUser(ctx, res.App, res.UserID)
	if err != nil {
		apierr.RenderError(w, h.Log, "categories.list", err)
		return
	}

	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	apierr.WriteJSON(w, http.StatusOK, out)
}

type detailResponse struct {
	categoryResponse
	Members []access.Member `json:"members"`
}

// ServeDetail handles GET /api/{app}/categories/{categoryID}: the
// category plus its hydrated member listing. Member-only.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
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

	cat, members, err := h.Access.Detail(ctx, id, res.UserID)
	if err != nil {
		apierr.RenderError(w, h.Log, "categories.detail", err)
		return
	}
	if cat.AppID != res.App {
		// The ID names a category of another app; render as missing.
		apierr.WriteError(w, http.StatusNotFound, "not found")
		return
	}

	apierr.WriteJSON(w, http.StatusOK, detailResponse{toCategoryResponse(cat), members})
}

// ServeRename handles PATCH /api/{app}/categories/{categoryID}. Owner only.
func (h *Handler) ServeRename(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	name := htmlsanitize.StripTags(strings.TrimSpace(req.Name))
	if name == "" {
		apierr.RenderBadRequest(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Access.Rename(ctx, id, name, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, "categories.rename", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeDelete handles DELETE /api/{app}/categories/{categoryID}. Owner
// only; cascades items, images, and prompts before the category itself.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Access.Delete(ctx, id, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, "categories.delete", err)
		return
	}
	h.Log.Info("category deleted",
		zap.String("category_id", id.Hex()),
		zap.String("user_id", res.UserID.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
