package web

// errors.go provides unified error responses for the web layer.
//
// Every error is logged with its technical detail server-side and returned
// to the client as a user-friendly message with an action suggestion and a
// support code. Fragment routes get an HTML alert, everything else JSON.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jortega/arcboard/internal/core"
	"github.com/jortega/arcboard/internal/web/templates"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error and renders the mapped user
// message in the format the route calls for.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := statusFor(err)
	userMsg := core.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", chimiddleware.GetReqID(r.Context()),
	)

	if wantsHTML(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code).Render(r.Context(), w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case core.IsSchemaError(err):
		return http.StatusUnprocessableEntity
	case core.IsParseError(err):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrSessionNotFound), errors.Is(err, core.ErrNoData):
		return http.StatusConflict
	case errors.Is(err, core.ErrTooManyUploads):
		return http.StatusTooManyRequests
	}
	return http.StatusBadRequest
}

// wantsHTML reports whether the route renders HTML fragments.
func wantsHTML(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/fragment/") || r.URL.Path == "/"
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
