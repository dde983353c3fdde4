// Package prompts is the HTTP surface for the prompt app: prompt CRUD,
// public sharing, the shared listing with its usage counter, and the
// admin force-unshare surface.
package prompts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/app/policy/adminpolicy"
	promptstore "github.com/tacar/listhub/internal/app/store/prompts"
	"github.com/tacar/listhub/internal/domain/models"
)

// PromptStore is the persistence surface the handlers need.
// *promptstore.Store satisfies it; tests use an in-memory fake.
type PromptStore interface {
	Create(ctx context.Context, p models.Prompt) (models.Prompt, error)
	GetByID(ctx context.Context, id models.PromptID) (models.Prompt, error)
	ListByCategory(ctx context.Context, catID models.CategoryID) ([]models.Prompt, error)
	ListShared(ctx context.Context) ([]models.Prompt, error)
	Update(ctx context.Context, id models.PromptID, upd promptstore.Update) error
	SetShared(ctx context.Context, id models.PromptID, shared bool) error
	IncrementUsage(ctx context.Context, id models.PromptID) error
	Delete(ctx context.Context, id models.PromptID) (int64, error)
}

// ReportStore is the moderation-queue surface. *reportstore.Store
// satisfies it; tests use an in-memory fake.
type ReportStore interface {
	Create(ctx context.Context, rep models.PromptReport) (models.PromptReport, error)
	ListPending(ctx context.Context) ([]models.PromptReport, error)
	Resolve(ctx context.Context, id models.ReportID) error
}

type Handler struct {
	Access  *access.Service
	Prompts PromptStore
	Reports ReportStore
	Admins  *adminpolicy.Policy
	Log     *zap.Logger
}

func NewHandler(svc *access.Service, prompts PromptStore, reports ReportStore, admins *adminpolicy.Policy, logger *zap.Logger) *Handler {
	return &Handler{Access: svc, Prompts: prompts, Reports: reports, Admins: admins, Log: logger}
}

func promptID(w http.ResponseWriter, r *http.Request) (models.PromptID, bool) {
	id, err := models.ParsePromptID(chi.URLParam(r, "promptID"))
	if err != nil {
		apierr.WriteError(w, http.StatusNotFound, "not found")
		return models.PromptID{}, false
	}
	return id, true
}

func categoryID(w http.ResponseWriter, r *http.Request) (models.CategoryID, bool) {
	id, err := models.ParseCategoryID(chi.URLParam(r, "categoryID"))
	if err != nil {
		apierr.WriteError(w, http.StatusNotFound, "not found")
		return models.CategoryID{}, false
	}
	return id, true
}

func reportID(w http.ResponseWriter, r *http.Request) (models.ReportID, bool) {
	id, err := models.ParseReportID(chi.URLParam(r, "reportID"))
	if err != nil {
		apierr.WriteError(w, http.StatusNotFound, "not found")
		return models.ReportID{}, false
	}
	return id, true
}
