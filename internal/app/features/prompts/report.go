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
	"github.com/tacar/listhub/internal/app/system/gates"
	"github.com/tacar/listhub/internal/app/system/htmlsanitize"
	"github.com/tacar/listhub/internal/app/system/timeouts"
	"github.com/tacar/listhub/internal/domain/models"
)

type reportRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

func (req *reportRequest) clean() {
	req.Reason = strings.TrimSpace(htmlsanitize.StripTags(req.Reason))
	req.Details = strings.TrimSpace(htmlsanitize.StripTags(req.Details))
}

// ServeReport handles POST /api/{app}/prompts/{promptID}/report. Anyone
// who can see the prompt may report it: category members always, and any
// signed-in user once it is shared. Unshared prompts stay hidden from
// outsiders here too.
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAppUser(w, r)
	if !res.OK {
		return
	}
	id, ok := promptID(w, r)
	if !ok {
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.RenderBadRequest(w, "invalid JSON body")
		return
	}
	req.clean()
	if req.Reason == "" {
		apierr.RenderBadRequest(w, "reason is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Prompts.GetByID(ctx, id)
	if err != nil {
		apierr.RenderError(w, h.Log, "prompts.report", err)
		return
	}
	if !p.IsShared {
		if _, err := h.Access.RequireMember(ctx, p.CategoryID, res.UserID); err != nil {
			if errors.Is(err, access.ErrPermissionDenied) {
				apierr.WriteError(w, http.StatusNotFound, "not found")
				return
			}
			apierr.RenderError(w, h.Log, "prompts.report", err)
			return
		}
	}

	rep, err := h.Reports.Create(ctx, models.PromptReport{
		PromptID:   p.ID,
		ReportedBy: res.UserID,
		Reason:     req.Reason,
		Details:    req.Details,
	})
	if err != nil {
		apierr.RenderError(w, h.Log, "prompts.report", err)
		return
	}

	h.Log.Info("prompt reported",
		zap.String("prompt_id", p.ID.Hex()),
		zap.String("report_id", rep.ID.Hex()),
		zap.String("reason", rep.Reason))

	apierr.WriteJSON(w, http.StatusCreated, rep)
}

// reportedPrompt pairs a pending report with the prompt it targets, so
// the moderation queue renders without extra round trips.
type reportedPrompt struct {
	Report models.PromptReport `json:"report"`
	Prompt models.Prompt       `json:"prompt"`
}

// ServeAdminReports handles GET /api/{app}/admin/prompts/reports: the
// pending moderation queue, oldest first. Reports whose prompt has since
// been deleted are skipped.
func (h *Handler) ServeAdminReports(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, h.Admins)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	reports, err := h.Reports.ListPending(ctx)
	if err != nil {
		apierr.RenderError(w, h.Log, "prompts.admin_reports", err)
		return
	}

	out := make([]reportedPrompt, 0, len(reports))
	for _, rep := range reports {
		p, err := h.Prompts.GetByID(ctx, rep.PromptID)
		if err != nil {
			if errors.Is(err, access.ErrNotFound) {
				continue
			}
			apierr.RenderError(w, h.Log, "prompts.admin_reports", err)
			return
		}
		out = append(out, reportedPrompt{Report: rep, Prompt: p})
	}
	apierr.WriteJSON(w, http.StatusOK, out)
}

// ServeAdminResolve handles
// POST /api/{app}/admin/prompts/reports/{reportID}/resolve. Whether the
// prompt was also unshared is the admin's separate call.
func (h *Handler) ServeAdminResolve(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, h.Admins)
	if !res.OK {
		return
	}
	id, ok := reportID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Reports.Resolve(ctx, id); err != nil {
		apierr.RenderError(w, h.Log, "prompts.admin_resolve", err)
		return
	}
	h.Log.Info("prompt report resolved",
		zap.String("report_id", id.Hex()),
		zap.String("admin", res.Email))
	w.WriteHeader(http.StatusNoContent)
}
