// Package authz turns the session user into typed identifiers handlers
// can hand straight to the stores.
package authz

import (
	"net/http"

	"github.com/tacar/listhub/internal/app/system/auth"
	"github.com/tacar/listhub/internal/domain/models"
)

// UserCtx returns the signed-in user's typed ID, app namespace, and email.
// If no user is present or the session ID is malformed it returns ok=false,
// so ok=true always means a valid, authenticated user. Malformed IDs fail
// closed; they indicate session corruption.
func UserCtx(r *http.Request) (uid models.UserID, app, email string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return models.UserID{}, "", "", false
	}
	uid, err := models.ParseUserID(user.ID)
	if err != nil {
		return models.UserID{}, "", "", false
	}
	return uid, user.App, user.Email, true
}

// AppMatches reports whether the session was issued for the app namespace
// in the URL. Sessions from one client app never grant access to another.
func AppMatches(r *http.Request, app string) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.App == app
}
