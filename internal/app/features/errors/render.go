package errors

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
)

// RenderError maps a domain error to its HTTP status and writes the
// envelope. Unknown errors are logged and surfaced as an opaque 500.
//
//	access.ErrNotFound         -> 404
//	access.ErrPermissionDenied -> 403
//	access.ErrInvalidOperation -> 409
//	access.ErrInvalidToken     -> 404
//	access.ErrTokenExpired     -> 410
//
// Invalid tokens render as 404 rather than 403 so redemption attempts
// cannot distinguish "never existed" from "revoked".
func RenderError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, access.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, access.ErrPermissionDenied):
		WriteError(w, http.StatusForbidden, "permission denied")
	case errors.Is(err, access.ErrInvalidOperation):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, access.ErrInvalidToken):
		WriteError(w, http.StatusNotFound, "invalid invite token")
	case errors.Is(err, access.ErrTokenExpired):
		WriteError(w, http.StatusGone, "invite token expired")
	default:
		RenderInternal(w, log, op, err)
	}
}
