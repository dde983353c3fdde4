package items

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apierr "github.com/tacar/listhub/internal/app/features/errors"
	itemstore "github.com/tacar/listhub/internal/app/store/items"
	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/app/system/htmlsanitize"
	"github.com/tacar/listhub/internal/app/system/timeouts"
	"github.com/tacar/listhub/internal/domain/models"
)

type itemRequest struct {
	Title           string    `json:"title"`
	Details         string    `json:"details"`
	ReminderTime    time.Time `json:"reminderTime"`
	ReminderEnabled bool      `json:"reminderEnabled"`
}

func (req *itemRequest) clean() (title, details string, ok bool) {
	title = htmlsanitize.StripTags(strings.TrimSpace(req.Title))
	details = htmlsanitize.StripTags(strings.TrimSpace(req.Details))
	return title, details, title != ""
}

// ServeCreate handles POST /api/{app}/categories/{categoryID}/items.
// Member-only. This is the one item operation where the client names the
// category directly, since the item does not exist yet.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	catID, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	title, details, ok := req.clean()
	if !ok {
		apierr.RenderBadRequest(w, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Access.RequireMember(ctx, catID, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, "items.create", err)
		return
	}

	it, err := h.Items.Create(ctx, models.Item{
		CategoryID:      catID,
		Title:           title,
		Details:         details,
		ReminderTime:    req.ReminderTime,
		ReminderEnabled: req.ReminderEnabled,
		CreatedBy:       res.UserID,
	})
	if err != nil {
		apierr.RenderError(w, h.Log, "items.create", err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, it)
}

// ServeList handles GET /api/{app}/categories/{categoryID}/items.
// Member-only, newest first.
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
		apierr.RenderError(w, h.Log, "items.list", err)
		return
	}

	items, err := h.Items.ListByCategory(ctx, catID)
	if err != nil {
		apierr.RenderError(w, h.Log, "items.list", err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	apierr.WriteJSON(w, http.StatusOK, items)
}

// requireItem loads the item and verifies the caller's membership in the
// category the item itself references.
func (h *Handler) requireItem(ctx context.Context, w http.ResponseWriter, r *http.Request, op string) (models.Item, bool) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return models.Item{}, false
	}
	id, ok := itemID(w, r)
	if !ok {
		return models.Item{}, false
	}

	it, err := h.Items.GetByID(ctx, id)
	if err != nil {
		apierr.RenderError(w, h.Log, op, err)
		return models.Item{}, false
	}
	if _, err := h.Access.RequireMember(ctx, it.CategoryID, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, op, err)
		return models.Item{}, false
	}
	return it, true
}

// ServeGet handles GET /api/{app}/items/{itemID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	it, ok := h.requireItem(ctx, w, r, "items.get")
	if !ok {
		return
	}
	apierr.WriteJSON(w, http.StatusOK, it)
}

// ServeUpdate handles PUT /api/{app}/items/{itemID}: full replacement of
// the editable fields.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	title, details, ok := req.clean()
	if !ok {
		apierr.RenderBadRequest(w, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	it, ok := h.requireItem(ctx, w, r, "items.update")
	if !ok {
		return
	}

	if err := h.Items.Update(ctx, it.ID, itemstore.Update{
		Title:           title,
		Details:         details,
		ReminderTime:    req.ReminderTime,
		ReminderEnabled: req.ReminderEnabled,
	}); err != nil {
		apierr.RenderError(w, h.Log, "items.update", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type doneRequest struct {
	Done bool `json:"done"`
}

// ServeSetDone handles POST /api/{app}/items/{itemID}/done.
func (h *Handler) ServeSetDone(w http.ResponseWriter, r *http.Request) {
	var req doneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	it, ok := h.requireItem(ctx, w, r, "items.done")
	if !ok {
		return
	}

	if err := h.Items.SetDone(ctx, it.ID, req.Done); err != nil {
		apierr.RenderError(w, h.Log, "items.done", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeDelete handles DELETE /api/{app}/items/{itemID}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	it, ok := h.requireItem(ctx, w, r, "items.delete")
	if !ok {
		return
	}

	if _, err := h.Items.Delete(ctx, it.ID); err != nil {
		apierr.RenderError(w, h.Log, "items.delete", err)
		return
	}
	h.Log.Debug("item deleted", zap.String("item_id", it.ID.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
