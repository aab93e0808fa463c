// Package service orchestrates the registration pipeline: server-side
// validation, the record lifecycle, and translation of store failures into
// domain errors.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"troywings/internal/platform/metrics"
	"troywings/internal/registration/models"
	"troywings/internal/registration/store"
	"troywings/internal/registration/validate"
	dErrors "troywings/pkg/domain-errors"
	"troywings/pkg/platform/sentinel"
)

// Clock supplies "now" for age validation; injected for testability.
type Clock func() time.Time

// Service owns registration business logic over a UserStore.
type Service struct {
	users   store.UserStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   Clock

	// allowDOBUpdate decides whether updates may rewrite the birth date.
	// When off, the stored birth date is immutable after registration.
	allowDOBUpdate bool
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the validation clock.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDOBUpdates enables birth-date changes through Update.
func WithDOBUpdates(allowed bool) Option {
	return func(s *Service) { s.allowDOBUpdate = allowed }
}

// New constructs a Service.
func New(users store.UserStore, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		users:  users,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and persists a new record, assigning its ID.
// Every field rule runs here regardless of what the client checked.
func (s *Service) Register(ctx context.Context, user *models.User) error {
	normalizePhone(user)
	if err := validate.Registration(*user, s.clock()); err != nil {
		return err
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to create user", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, err.Error())
	}

	s.metrics.IncrementRegistrationsCreated()
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return nil
}

// List returns all records. Read failures propagate so callers can
// distinguish "no users" from "read failed".
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list users", "error", err)
		if dErrors.HasCode(err, dErrors.CodeMapping) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, err.Error())
	}
	return users, nil
}

// Update rewrites the record keyed by user.ID. Fields absent from the
// update set keep their stored values; the birth date is written only when
// the service is configured to allow it.
func (s *Service) Update(ctx context.Context, user models.User) error {
	if user.ID <= 0 {
		return dErrors.New(dErrors.CodeInvalidID, "a valid user id is required")
	}

	normalizePhone(&user)
	if !s.allowDOBUpdate {
		user.DateOfBirth = time.Time{}
	}
	if err := validate.Update(user, s.clock()); err != nil {
		return err
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "user %d does not exist", user.ID)
		}
		s.logger.ErrorContext(ctx, "failed to update user", "user_id", user.ID, "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, err.Error())
	}

	s.metrics.IncrementUsersUpdated()
	s.logger.InfoContext(ctx, "user updated", "user_id", user.ID)
	return nil
}

// normalizePhone folds a blank phone into "no value" so it is never stored
// as a literal empty string.
func normalizePhone(u *models.User) {
	if u.Phone != nil && strings.TrimSpace(*u.Phone) == "" {
		u.Phone = nil
	}
}
