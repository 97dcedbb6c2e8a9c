package handler

//go:generate mockgen -source=handler.go -destination=mocks/activities-mocks.go -package=mocks Service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"mergington/internal/activities/models"
	"mergington/internal/platform/middleware"
	"mergington/internal/platform/privacy"
	dErrors "mergington/pkg/domain-errors"
	"mergington/pkg/platform/httputil"
)

// Service defines the interface for activity registry operations.
type Service interface {
	List(ctx context.Context) models.Registry
	SignUp(ctx context.Context, activityName, email string) error
	Unregister(ctx context.Context, activityName, email string) error
}

// Handler serves the activities endpoints.
type Handler struct {
	logger     *slog.Logger
	activities Service
}

func New(activities Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:     logger,
		activities: activities,
	}
}

// Register registers the activities routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/activities", h.HandleList)
	r.Post("/activities/{activity_name}/signup", h.HandleSignUp)
	r.Delete("/activities/{activity_name}/unregister", h.HandleUnregister)
}

// HandleList returns every activity keyed by name.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.activities.List(r.Context()))
}

// HandleSignUp signs the student given by the email query parameter up for the activity.
func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	activityName := activityNameParam(r)

	email, ok := httputil.RequireQuery(w, r, h.logger, "email", requestID)
	if !ok {
		return
	}

	if err := h.activities.SignUp(ctx, activityName, email); err != nil {
		h.logFailure(ctx, "signup failed", err, activityName, email, requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, activityName),
	})
}

// HandleUnregister removes the student given by the email query parameter from the activity.
func (h *Handler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	activityName := activityNameParam(r)

	email, ok := httputil.RequireQuery(w, r, h.logger, "email", requestID)
	if !ok {
		return
	}

	if err := h.activities.Unregister(ctx, activityName, email); err != nil {
		h.logFailure(ctx, "unregister failed", err, activityName, email, requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, activityName),
	})
}

// logFailure logs client errors at debug and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, activityName, email, requestID string) {
	level := slog.LevelError
	if dErrors.HasCode(err, dErrors.CodeNotFound) ||
		dErrors.HasCode(err, dErrors.CodeBadRequest) ||
		dErrors.HasCode(err, dErrors.CodeInvalidInput) {
		level = slog.LevelDebug
	}
	h.logger.Log(ctx, level, msg,
		"error", err,
		"activity", activityName,
		"email", privacy.MaskEmail(email),
		"request_id", requestID,
	)
}

// activityNameParam returns the decoded activity name path segment. chi matches
// on the raw path when the request carries escaped characters such as %2F.
func activityNameParam(r *http.Request) string {
	name := chi.URLParam(r, "activity_name")
	if r.URL.RawPath == "" {
		return name
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}
