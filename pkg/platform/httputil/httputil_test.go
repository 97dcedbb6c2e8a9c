package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "mergington/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "not found",
			err:        dErrors.New(dErrors.CodeNotFound, "Activity not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
			wantDetail: "Activity not found",
		},
		{
			name:       "bad request",
			err:        dErrors.New(dErrors.CodeBadRequest, "Student is already signed up"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
			wantDetail: "Student is already signed up",
		},
		{
			name:       "wrapped domain error keeps its code",
			err:        fmt.Errorf("unregister: %w", dErrors.New(dErrors.CodeBadRequest, "Student is not signed up for this activity")),
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
			wantDetail: "Student is not signed up for this activity",
		},
		{
			name:       "invalid input",
			err:        dErrors.New(dErrors.CodeInvalidInput, "email query parameter is required"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "unprocessable_entity",
			wantDetail: "email query parameter is required",
		},
		{
			name:       "empty message falls back to code",
			err:        dErrors.New(dErrors.CodeConflict, ""),
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
			wantDetail: "conflict",
		},
		{
			name:       "plain error hides internals",
			err:        errors.New("open /var/data/activities.json: permission denied"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
			wantDetail: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error)
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"message": "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestFallbackHandlers(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{"not found", NotFound, http.StatusNotFound, "not_found", "Not Found"},
		{"method not allowed", MethodNotAllowed, http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error)
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}
