package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mergington/internal/activities/models"
	"mergington/internal/platform/metrics"
	"mergington/internal/platform/privacy"
	"mergington/internal/platform/tracer"
	dErrors "mergington/pkg/domain-errors"
	"mergington/pkg/platform/sentinel"
)

// Detail messages returned to clients.
const (
	MsgActivityNotFound  = "Activity not found"
	MsgAlreadySignedUp   = "Student is already signed up"
	MsgNotSignedUp       = "Student is not signed up for this activity"
	MsgEmailRequired     = "email query parameter is required"
	msgRegistryUnhandled = "failed to update activity registry"
)

// Store is the registry the service operates on.
// Error contract: Get, SignUp and Unregister return (wrapped) sentinel.ErrNotFound,
// sentinel.ErrAlreadyRegistered, sentinel.ErrNotRegistered or sentinel.ErrInvalidInput.
// Persistence failures are absorbed by the store and never returned from mutations.
type Store interface {
	ListAll() models.Registry
	Get(name string) (models.Activity, error)
	SignUp(name, email string) error
	Unregister(name, email string) error
}

type Option func(*Service)

// Service exposes registry operations with domain errors, metrics and tracing.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:  store,
		logger: logger,
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// WithMetrics sets the metrics instance for the service
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// List returns a snapshot of every activity.
func (s *Service) List(ctx context.Context) models.Registry {
	_, span := s.tracer.Start(ctx, tracer.SpanActivitiesList)
	start := time.Now()

	activities := s.store.ListAll()

	s.observeLatency("list", start)
	span.SetAttributes(tracer.Int(tracer.AttrActivityCount, len(activities)))
	span.End(nil)
	return activities
}

// SignUp registers email for the named activity.
func (s *Service) SignUp(ctx context.Context, activityName, email string) (err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanActivitiesSignUp, tracer.String(tracer.AttrActivity, activityName))
	start := time.Now()
	defer func() {
		s.observeLatency("signup", start)
		span.End(err)
	}()

	if storeErr := s.store.SignUp(activityName, email); storeErr != nil {
		outcome, domainErr := translate(storeErr, MsgAlreadySignedUp)
		s.recordSignUp(outcome)
		span.SetAttributes(tracer.String(tracer.AttrOutcome, outcome))
		s.logger.InfoContext(ctx, "activity signup rejected",
			"activity", activityName,
			"email", privacy.MaskEmail(email),
			"outcome", outcome,
		)
		return domainErr
	}

	s.recordSignUp(metrics.OutcomeSuccess)
	if s.metrics != nil {
		s.metrics.IncrementParticipants()
	}
	span.SetAttributes(tracer.String(tracer.AttrOutcome, metrics.OutcomeSuccess))
	s.logger.InfoContext(ctx, "student signed up",
		"activity", activityName,
		"email", privacy.MaskEmail(email),
	)
	return nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, activityName, email string) (err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanActivitiesUnregister, tracer.String(tracer.AttrActivity, activityName))
	start := time.Now()
	defer func() {
		s.observeLatency("unregister", start)
		span.End(err)
	}()

	if storeErr := s.store.Unregister(activityName, email); storeErr != nil {
		outcome, domainErr := translate(storeErr, MsgNotSignedUp)
		s.recordUnregister(outcome)
		span.SetAttributes(tracer.String(tracer.AttrOutcome, outcome))
		s.logger.InfoContext(ctx, "activity unregister rejected",
			"activity", activityName,
			"email", privacy.MaskEmail(email),
			"outcome", outcome,
		)
		return domainErr
	}

	s.recordUnregister(metrics.OutcomeSuccess)
	if s.metrics != nil {
		s.metrics.DecrementParticipants()
	}
	span.SetAttributes(tracer.String(tracer.AttrOutcome, metrics.OutcomeSuccess))
	s.logger.InfoContext(ctx, "student unregistered",
		"activity", activityName,
		"email", privacy.MaskEmail(email),
	)
	return nil
}

// translate maps a store error to a metrics outcome and a domain error.
// membershipMsg is the detail used for the membership conflict of the calling operation.
func translate(err error, membershipMsg string) (string, error) {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return metrics.OutcomeNotFound, dErrors.Wrap(err, dErrors.CodeNotFound, MsgActivityNotFound)
	case errors.Is(err, sentinel.ErrAlreadyRegistered):
		return metrics.OutcomeAlreadyRegistered, dErrors.Wrap(err, dErrors.CodeBadRequest, membershipMsg)
	case errors.Is(err, sentinel.ErrNotRegistered):
		return metrics.OutcomeNotRegistered, dErrors.Wrap(err, dErrors.CodeBadRequest, membershipMsg)
	case errors.Is(err, sentinel.ErrInvalidInput):
		return metrics.OutcomeInvalid, dErrors.Wrap(err, dErrors.CodeInvalidInput, MsgEmailRequired)
	default:
		return metrics.OutcomeError, dErrors.Wrap(err, dErrors.CodeInternal, msgRegistryUnhandled)
	}
}

func (s *Service) recordSignUp(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementSignUps(outcome)
	}
}

func (s *Service) recordUnregister(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementUnregistrations(outcome)
	}
}

func (s *Service) observeLatency(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperationLatency(operation, time.Since(start).Seconds())
	}
}
