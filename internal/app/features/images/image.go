package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/app/system/timeouts"
	"github.com/tacar/listhub/internal/domain/models"
)

type createRequest struct {
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	OCRResult string `json:"ocrResult"`
}

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// storageKey mints the external-storage object key for a new upload. The
// original file name only contributes its extension; the key itself is a
// fresh UUID so uploads can never collide or traverse.
func storageKey(catID models.CategoryID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("images/%s/%s%s", catID.Hex(), uuid.NewString(), ext)
}

// ServeCreate handles POST /api/{app}/categories/{categoryID}/images.
// Registers the metadata and returns the image with its minted storage
// key; the client uploads the binary to that key separately.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	catID, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		apierr.RenderBadRequest(w, "fileName is required")
		return
	}
	if !allowedMimeTypes[req.MimeType] {
		apierr.RenderBadRequest(w, "unsupported image type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Access.RequireMember(ctx, catID, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, "images.create", err)
		return
	}

	img, err := h.Images.Create(ctx, models.Image{
		CategoryID: catID,
		FileName:   fileName,
		StorageKey: storageKey(catID, fileName),
		MimeType:   req.MimeType,
		OCRResult:  req.OCRResult,
		CreatedBy:  res.UserID,
	})
	if err != nil {
		apierr.RenderError(w, h.Log, "images.create", err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, img)
}

// ServeList handles GET /api/{app}/categories/{categoryID}/images, in
// CSV-row order.
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
		apierr.RenderError(w, h.Log, "images.list", err)
		return
	}

	imgs, err := h.Images.ListByCategory(ctx, catID)
	if err != nil {
		apierr.RenderError(w, h.Log, "images.list", err)
		return
	}
	if imgs == nil {
		imgs = []models.Image{}
	}
	apierr.WriteJSON(w, http.StatusOK, imgs)
}

// requireImage loads the image and verifies the caller's membership in
// the category the image itself references.
func (h *Handler) requireImage(ctx context.Context, w http.ResponseWriter, r *http.Request, op string) (models.Image, bool) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return models.Image{}, false
	}
	id, ok := imageID(w, r)
	if !ok {
		return models.Image{}, false
	}

	img, err := h.Images.GetByID(ctx, id)
	if err != nil {
		apierr.RenderError(w, h.Log, op, err)
		return models.Image{}, false
	}
	if _, err := h.Access.RequireMember(ctx, img.CategoryID, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, op, err)
		return models.Image{}, false
	}
	return img, true
}

// ServeGet handles GET /api/{app}/images/{imageID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	img, ok := h.requireImage(ctx, w, r, "images.get")
	if !ok {
		return
	}
	apierr.WriteJSON(w, http.StatusOK, img)
}

type ocrRequest struct {
	OCRResult string `json:"ocrResult"`
}

// ServeUpdateOCR handles PATCH /api/{app}/images/{imageID}/ocr after a
// re-run or manual correction of the recognized text.
func (h *Handler) ServeUpdateOCR(w http.ResponseWriter, r *http.Request) {
	var req ocrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	img, ok := h.requireImage(ctx, w, r, "images.ocr")
	if !ok {
		return
	}

	if err := h.Images.UpdateOCR(ctx, img.ID, req.OCRResult); err != nil {
		apierr.RenderError(w, h.Log, "images.ocr", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	ImageIDs []models.ImageID `json:"imageIds"`
}

// ServeReorder handles PUT /api/{app}/categories/{categoryID}/images/order.
// The request lists every image ID in its new CSV-row position; IDs that
// do not belong to the category are rejected before anything moves.
func (h *Handler) ServeReorder(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	catID, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	if len(req.ImageIDs) == 0 {
		apierr.RenderBadRequest(w, "imageIds is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Access.RequireMember(ctx, catID, res.UserID); err != nil {
		apierr.RenderError(w, h.Log, "images.reorder", err)
		return
	}

	existing, err := h.Images.ListByCategory(ctx, catID)
	if err != nil {
		apierr.RenderError(w, h.Log, "images.reorder", err)
		return
	}
	inCategory := make(map[models.ImageID]bool, len(existing))
	for _, img := range existing {
		inCategory[img.ID] = true
	}
	for _, id := range req.ImageIDs {
		if !inCategory[id] {
			apierr.RenderBadRequest(w, "imageIds contains an image outside the category")
			return
		}
	}

	for i, id := range req.ImageIDs {
		if err := h.Images.SetSortOrder(ctx, id, i); err != nil {
			apierr.RenderError(w, h.Log, "images.reorder", err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeDelete handles DELETE /api/{app}/images/{imageID}. Removes the
// metadata only; external storage is reaped out of band by key prefix.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	img, ok := h.requireImage(ctx, w, r, "images.delete")
	if !ok {
		return
	}

	if _, err := h.Images.Delete(ctx, img.ID); err != nil {
		apierr.RenderError(w, h.Log, "images.delete", err)
		return
	}
	h.Log.Debug("image deleted",
		zap.String("image_id", img.ID.Hex()),
		zap.String("storage_key", img.StorageKey))
	w.WriteHeader(http.StatusNoContent)
}
