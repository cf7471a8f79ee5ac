package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/timeclock-service/internal/auth"
	"github.com/spec-kit/timeclock-service/internal/config"
	"github.com/spec-kit/timeclock-service/internal/domain"
	"github.com/spec-kit/timeclock-service/internal/events"
	"github.com/spec-kit/timeclock-service/internal/repository"
	apperrors "github.com/spec-kit/timeclock-service/pkg/util"
)

// StaffService manages accounts on behalf of admins and self-service profile
// edits.
type StaffService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *StaffService {
	return &StaffService{
		users:      users,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// ListUsers returns every account, admins included.
func (s *StaffService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx, repository.UserFilter{})
}

// ListStaff returns non-admin accounts only.
func (s *StaffService) ListStaff(ctx context.Context) ([]domain.User, error) {
	isAdmin := false
	return s.users.List(ctx, repository.UserFilter{IsAdmin: &isAdmin})
}

// AddStaff creates a non-admin account.
func (s *StaffService) AddStaff(ctx context.Context, actor *domain.User, username, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.users.Create(ctx, staff); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("username already registered", map[string]any{"username": username})
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStaffCreated,
		UserID:    staff.ID,
		Timestamp: time.Now().UTC(),
		Payload:   events.StaffCreatedPayload{Username: staff.Username, IsAdmin: false},
	})
	return staff, nil
}

// UpdateStaff overwrites the target's username, and its password only when a
// non-empty value is supplied. An unknown staff id is a silent no-op and
// returns (nil, nil).
func (s *StaffService) UpdateStaff(ctx context.Context, staffID, newUsername, newPassword string) (*domain.User, error) {
	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s.applyEdit(ctx, staff, newUsername, newPassword)
}

// UpdateProfile applies the same edit rules to the session's own account.
func (s *StaffService) UpdateProfile(ctx context.Context, user *domain.User, newUsername, newPassword string) (*domain.User, error) {
	return s.applyEdit(ctx, user, newUsername, newPassword)
}

func (s *StaffService) applyEdit(ctx context.Context, user *domain.User, newUsername, newPassword string) (*domain.User, error) {
	user.Username = newUsername
	if newPassword != "" {
		hash, err := auth.HashPassword(newPassword, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("username already registered", map[string]any{"username": newUsername})
		}
		return nil, err
	}
	return user, nil
}

// DeleteStaff removes a staff account best-effort. Failures and skipped
// targets are logged, never surfaced; admins are never deletable through
// this path.
func (s *StaffService) DeleteStaff(ctx context.Context, actor *domain.User, staffID string) {
	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("delete staff lookup failed", zap.String("staff_id", staffID), zap.Error(err))
		}
		return
	}
	if staff.IsAdmin {
		s.logger.Warn("delete staff skipped admin target",
			zap.String("staff_id", staffID),
			zap.String("actor_id", actor.ID))
		return
	}

	if err := s.users.Delete(ctx, staffID); err != nil {
		s.logger.Warn("delete staff failed", zap.String("staff_id", staffID), zap.Error(err))
		return
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStaffDeleted,
		UserID:    staffID,
		Timestamp: time.Now().UTC(),
		Payload:   events.StaffDeletedPayload{DeletedBy: actor.ID},
	})
}

func (s *StaffService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
