package prompts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
	apierr "github.com/tacar/listhub/internal/app/features/errors"
	promptstore "github.com/tacar/listhub/internal/app/store/prompts"
	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/app/system/htmlsanitize"
	"github.com/tacar/listhub/internal/app/system/timeouts"
	"github.com/tacar/listhub/internal/domain/models"
)

type promptRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"imageUrls"`
}

func (req *promptRequest) clean() (title, content string, ok bool) {
	title = htmlsanitize.StripTags(strings.TrimSpace(req.Title))
	// Content keeps basic formatting; only unsafe markup is dropped.
	content = htmlsanitize.Sanitize(req.Content)
	return title, content, title != ""
}

// ServeCreate handles POST /api/{app}/categories/{categoryID}/prompts.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	catID, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	title, content, ok := req.clean()
	if !ok {
		apierr.RenderBadRequest(w, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Access.RequireMember(ctx, catID, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, "prompts.create", err)
		return
	}

	p, err := h.Prompts.Create(ctx, models.Prompt{
		CategoryID: catID,
		Title:      title,
		Content:    content,
		ImageURLs:  req.ImageURLs,
		CreatedBy:  res.UserID,
	})
	if err != nil {
		apierr.RenderError(w, h.Log, "prompts.create", err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, p)
}

// ServeList handles GET /api/{app}/categories/{categoryID}/prompts.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	catID, ok := categoryID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Access.RequireMember(ctx, catID, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, "prompts.list", err)
		return
	}

	ps, err := h.Prompts.ListByCategory(ctx, catID)
	if err != nil {
		apierr.RenderError(w, h.Log, "prompts.list", err)
		return
	}
	if ps == nil {
		ps = []models.Prompt{}
	}
	apierr.WriteJSON(w, http.StatusOK, ps)
}

// ServeShared handles GET /api/{app}/prompts/shared: every publicly
// shared prompt, most-used first. Signed-in only, no membership check.
func (h *Handler) ServeShared(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ps, err := h.Prompts.ListShared(ctx)
	if err != nil {
		apierr.RenderError(w, h.Log, "prompts.shared", err)
		return
	}
	if ps == nil {
		ps = []models.Prompt{}
	}
	apierr.WriteJSON(w, http.StatusOK, ps)
}

// requirePrompt loads the prompt and verifies membership in its category.
// When sharedOK is set, a publicly shared prompt passes without the
// membership check (read-side paths only).
func (h *Handler) requirePrompt(ctx context.Context, w http.ResponseWriter, r *http.Request, op string, sharedOK bool) (models.Prompt, bool) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return models.Prompt{}, false
	}
	id, ok := promptID(w, r)
	if !ok {
		return models.Prompt{}, false
	}

	p, err := h.Prompts.GetByID(ctx, id)
	if err != nil {
		apierr.RenderError(w, h.Log, op, err)
		return models.Prompt{}, false
	}
	if sharedOK && p.IsShared {
		return p, true
	}
	if _, err := h.Access.RequireMember(ctx, p.CategoryID, res.UserID); err != nil {
		if sharedOK && errors.Is(err, access.ErrPermissionDenied) {
			// Keep an unshared prompt's existence hidden from outsiders.
			apierr.WriteError(w, http.StatusNotFound, "not found")
			return models.Prompt{}, false
		}
		apierr.RenderError(w, h.Log, op, err)
		return models.Prompt{}, false
	}
	return p, true
}

// ServeGet handles GET /api/{app}/prompts/{promptID}. Shared prompts are
// readable by anyone signed in to the app.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.requirePrompt(ctx, w, r, "prompts.get", true)
	if !ok {
		return
	}
	apierr.WriteJSON(w, http.StatusOK, p)
}

// ServeUpdate handles PUT /api/{app}/prompts/{promptID}. Member-only even
// for shared prompts.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	title, content, ok := req.clean()
	if !ok {
		apierr.RenderBadRequest(w, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.requirePrompt(ctx, w, r, "prompts.update", false)
	if !ok {
		return
	}

	if err := h.Prompts.Update(ctx, p.ID, promptstore.Update{
		Title:     title,
		Content:   content,
		ImageURLs: req.ImageURLs,
	}); err != nil {
		apierr.RenderError(w, h.Log, "prompts.update", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type shareRequest struct {
	Shared bool `json:"shared"`
}

// ServeSetShared handles POST /api/{app}/prompts/{promptID}/share.
func (h *Handler) ServeSetShared(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.requirePrompt(ctx, w, r, "prompts.share", false)
	if !ok {
		return
	}

	if err := h.Prompts.SetShared(ctx, p.ID, req.Shared); err != nil {
		apierr.RenderError(w, h.Log, "prompts.share", err)
		return
	}
	h.Log.Info("prompt sharing changed",
		zap.String("prompt_id", p.ID.Hex()),
		zap.Bool("shared", req.Shared))
	w.WriteHeader(http.StatusNoContent)
}

// ServeUse handles POST /api/{app}/prompts/{promptID}/use: bumps the
// usage counter when a prompt is copied. Works on shared prompts too.
func (h *Handler) ServeUse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.requirePrompt(ctx, w, r, "prompts.use", true)
	if !ok {
		return
	}

	if err := h.Prompts.IncrementUsage(ctx, p.ID); err != nil {
		apierr.RenderError(w, h.Log, "prompts.use", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeDelete handles DELETE /api/{app}/prompts/{promptID}. Member-only.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.requirePrompt(ctx, w, r, "prompts.delete", false)
	if !ok {
		return
	}

	if _, err := h.Prompts.Delete(ctx, p.ID); err != nil {
		apierr.RenderError(w, h.Log, "prompts.delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeAdminUnshare handles DELETE /api/{app}/admin/prompts/{promptID}/share:
// force-unshare for moderation, allow-listed admins only.
func (h *Handler) ServeAdminUnshare(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, h.Admins)
	if !res.OK {
		return
	}
	id, ok := promptID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Prompts.SetShared(ctx, id, false); err != nil {
		apierr.RenderError(w, h.Log, "prompts.admin_unshare", err)
		return
	}
	h.Log.Info("prompt force-unshared",
		zap.String("prompt_id", id.Hex()),
		zap.String("admin", res.Email))
	w.WriteHeader(http.StatusNoContent)
}
