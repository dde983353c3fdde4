package logout

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/system/auth"
	"github.com/tacar/listhub/internal/testutil"
)

func newSessionMgr(t *testing.T) *auth.SessionManager {
	t.Helper()
	mgr, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "listhub-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return mgr
}

// Composes the router the way bootstrap does, so the mounted path is
// what gets exercised, not just the handler.
func TestLogoutRouting(t *testing.T) {
	h := NewHandler(newSessionMgr(t), zap.NewNop())

	root := chi.NewRouter()
	root.Route("/auth", func(r chi.Router) {
		r.Mount("/logout", Routes(h))
	})

	r := testutil.NewRequest(http.MethodPost, "/auth/logout", "")
	w := testutil.NewRecorder()
	root.ServeHTTP(w, r)
	w.AssertStatus(t, http.StatusNoContent)
}

func TestLogoutIdempotent(t *testing.T) {
	h := NewHandler(newSessionMgr(t), zap.NewNop())

	for range 2 {
		r := testutil.NewRequest(http.MethodPost, "/", "")
		w := testutil.NewRecorder()
		h.ServeLogout(w, r)
		w.AssertStatus(t, http.StatusNoContent)
	}
}
