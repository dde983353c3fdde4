// Package errors renders API error responses. Every error leaving a
// handler goes through RenderError so the mapping from domain errors to
// HTTP status codes lives in exactly one place.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// response is the JSON error envelope.
type response struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, response{Error: msg})
}

// RenderUnauthorized writes a 401 for requests with no signed-in user.
func RenderUnauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "sign in required")
}

// RenderForbidden writes a 403 with a caller-supplied message.
func RenderForbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "permission denied"
	}
	WriteError(w, http.StatusForbidden, msg)
}

// RenderBadRequest writes a 400 with a caller-supplied message.
func RenderBadRequest(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "bad request"
	}
	WriteError(w, http.StatusBadRequest, msg)
}

// RenderInternal logs err and writes an opaque 500. The detail stays in
// the log; clients only see that something went wrong.
func RenderInternal(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log != nil {
		log.Error("internal error", zap.String("op", op), zap.Error(err))
	}
	WriteError(w, http.StatusInternalServerError, "internal error")
}
