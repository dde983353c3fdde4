// Package logout clears the caller's session.
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/system/auth"
)

type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sessionMgr, Log: logger}
}

// ServeLogout handles POST /auth/logout. Always succeeds; logging out
// twice is fine.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("failed to clear session", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
