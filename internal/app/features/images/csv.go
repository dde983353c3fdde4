package images

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/app/system/timeouts"
)

// ServeCSV handles GET /api/{app}/categories/{categoryID}/images/csv:
// one row per image in sort order, carrying the recognized text. This is
// the export the ocrcsv app exists for.
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	catID, ok := categoryID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cat, err := h.Access.RequireMember(ctx, catID, res.UserID)
	if err != nil {
		apierr.RenderError(w, h.Log, "images.csv", err)
		return
	}

	imgs, err := h.Images.ListByCategory(ctx, catID)
	if err != nil {
		apierr.RenderError(w, h.Log, "images.csv", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", cat.Name+".csv"))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"row", "file_name", "text"})
	for i, img := range imgs {
		if err := cw.Write([]string{strconv.Itoa(i + 1), img.FileName, img.OCRResult}); err != nil {
			// Headers are gone; nothing left to do but log.
			h.Log.Warn("csv write failed", zap.Error(err))
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Warn("csv flush failed", zap.Error(err))
	}
}
