// Package gates provides per-handler authorization checks. Route-level
// middleware (auth.RequireSignedIn) handles the coarse signed-in check;
// gates resolve the caller into typed context and render the error
// response themselves when a check fails. Resource-specific checks
// (membership, ownership) live in access.Service, not here.
package gates

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierr "github.com/tacar/listhub/internal/app/features/errors"
	"github.com/tacar/listhub/internal/app/policy/adminpolicy"
	"github.com/tacar/listhub/internal/app/system/authz"
	"github.com/tacar/listhub/internal/domain/models"
)

// Result is the caller's resolved identity.
type Result struct {
	UserID models.UserID
	App    string
	Email  string
	OK     bool
}

// RequireAppUser ensures the caller is signed in, the {app} URL segment
// names a known namespace, and the session was issued for that
// namespace. On failure it writes the error response and returns OK=false.
func RequireAppUser(w http.ResponseWriter, r *http.Request) Result {
	app := chi.URLParam(r, "app")
	if !models.ValidApp(app) {
		apierr.WriteError(w, http.StatusNotFound, "unknown app")
		return Result{OK: false}
	}
	uid, sessApp, email, ok := authz.UserCtx(r)
	if !ok {
		apierr.RenderUnauthorized(w)
		return Result{OK: false}
	}
	if sessApp != app {
		apierr.RenderForbidden(w, "session belongs to a different app")
		return Result{OK: false}
	}
	return Result{UserID: uid, App: app, Email: email, OK: true}
}

// AppOnly returns middleware that 404s any request whose {app} URL
// segment is not app. Resource features are mounted under every
// namespace; each one uses this to answer only in its own, so e.g. an
// ocrcsv session cannot reach the item endpoints at all.
func AppOnly(app string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "app") != app {
				apierr.WriteError(w, http.StatusNotFound, "not found")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin ensures the caller is signed in and on the injected admin
// allow-list.
func RequireAdmin(w http.ResponseWriter, r *http.Request, p *adminpolicy.Policy) Result {
	uid, app, email, ok := authz.UserCtx(r)
	if !ok {
		apierr.RenderUnauthorized(w)
		return Result{OK: false}
	}
	if !p.IsAdmin(email) {
		apierr.RenderForbidden(w, "admin access required")
		return Result{OK: false}
	}
	return Result{UserID: uid, App: app, Email: email, OK: true}
}
