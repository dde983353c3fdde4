package gates

import (
	"net/http"
	"testing"

	"github.com/tacar/listhub/internal/app/policy/adminpolicy"
	"github.com/tacar/listhub/internal/domain/models"
	"github.com/tacar/listhub/internal/testutil"
)

func TestRequireAppUser(t *testing.T) {
	user := testutil.NewTestUser(models.AppKaumono, "Aki", "aki@example.com")

	r := testutil.NewAuthenticatedRequest(http.MethodGet, "/", "", user)
	r = testutil.WithChiURLParam(r, "app", models.AppKaumono)
	w := testutil.NewRecorder()

	res := RequireAppUser(w, r)
	if !res.OK {
		t.Fatalf("expected OK, got status %d", w.Code)
	}
	if res.UserID != user.ID {
		t.Errorf("user id: got %s, want %s", res.UserID.Hex(), user.ID.Hex())
	}
	if res.App != models.AppKaumono {
		t.Errorf("app: got %q, want %q", res.App, models.AppKaumono)
	}
}

func TestRequireAppUserUnknownApp(t *testing.T) {
	user := testutil.NewTestUser(models.AppKaumono, "Aki", "aki@example.com")

	r := testutil.NewAuthenticatedRequest(http.MethodGet, "/", "", user)
	r = testutil.WithChiURLParam(r, "app", "nonsense")
	w := testutil.NewRecorder()

	if res := RequireAppUser(w, r); res.OK {
		t.Fatal("expected failure for unknown app")
	}
	w.AssertStatus(t, http.StatusNotFound)
}

func TestRequireAppUserNoSession(t *testing.T) {
	r := testutil.NewRequest(http.MethodGet, "/", "")
	r = testutil.WithChiURLParam(r, "app", models.AppKaumono)
	w := testutil.NewRecorder()

	if res := RequireAppUser(w, r); res.OK {
		t.Fatal("expected failure without a session")
	}
	w.AssertStatus(t, http.StatusUnauthorized)
}

func TestRequireAppUserCrossApp(t *testing.T) {
	user := testutil.NewTestUser(models.AppPrompt, "Aki", "aki@example.com")

	r := testutil.NewAuthenticatedRequest(http.MethodGet, "/", "", user)
	r = testutil.WithChiURLParam(r, "app", models.AppKaumono)
	w := testutil.NewRecorder()

	if res := RequireAppUser(w, r); res.OK {
		t.Fatal("expected failure for cross-app session")
	}
	w.AssertStatus(t, http.StatusForbidden)
	w.AssertContains(t, "different app")
}

func TestAppOnly(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})
	mw := AppOnly(models.AppKaumono)(next)

	r := testutil.NewRequest(http.MethodGet, "/", "")
	r = testutil.WithChiURLParam(r, "app", models.AppKaumono)
	w := testutil.NewRecorder()
	mw.ServeHTTP(w, r)
	if !called {
		t.Fatal("matching namespace did not reach the handler")
	}

	called = false
	r = testutil.NewRequest(http.MethodGet, "/", "")
	r = testutil.WithChiURLParam(r, "app", models.AppOCRCSV)
	w = testutil.NewRecorder()
	mw.ServeHTTP(w, r)
	if called {
		t.Fatal("foreign namespace reached the handler")
	}
	w.AssertStatus(t, http.StatusNotFound)
}

func TestRequireAdmin(t *testing.T) {
	policy := adminpolicy.New([]string{"root@example.com"})

	admin := testutil.NewTestUser(models.AppKaumono, "Root", "root@example.com")
	r := testutil.NewAuthenticatedRequest(http.MethodGet, "/", "", admin)
	w := testutil.NewRecorder()
	if res := RequireAdmin(w, r, policy); !res.OK {
		t.Fatalf("expected OK for allow-listed admin, got status %d", w.Code)
	}

	user := testutil.NewTestUser(models.AppKaumono, "Aki", "aki@example.com")
	r = testutil.NewAuthenticatedRequest(http.MethodGet, "/", "", user)
	w = testutil.NewRecorder()
	if res := RequireAdmin(w, r, policy); res.OK {
		t.Fatal("expected failure for non-admin")
	}
	w.AssertStatus(t, http.StatusForbidden)
}
