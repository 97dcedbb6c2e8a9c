package httputil

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "mergington/pkg/domain-errors"
)

// RequireQuery reads a required query parameter.
// A blank value counts as missing; otherwise the value is returned as sent.
// On failure, writes a 422 error response and returns "", false.
//
// Usage:
//
//	email, ok := httputil.RequireQuery(w, r, h.logger, "email", requestID)
//	if !ok {
//	    return
//	}
func RequireQuery(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key, requestID string) (string, bool) {
	value := r.URL.Query().Get(key)
	if strings.TrimSpace(value) == "" {
		logger.WarnContext(r.Context(), "missing required query parameter",
			"param", key,
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeInvalidInput, key+" query parameter is required"))
		return "", false
	}
	return value, true
}
