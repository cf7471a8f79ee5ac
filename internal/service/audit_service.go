package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/timeclock-service/internal/events"
)

// AuditService writes structured audit records for lifecycle events.
// Best-effort: handler errors never propagate to the request that published
// the event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventClockRecorded, a.handleClockRecorded)
	a.dispatcher.Subscribe(events.EventStaffCreated, a.handleStaffCreated)
	a.dispatcher.Subscribe(events.EventStaffDeleted, a.handleStaffDeleted)
}

func (a *AuditService) handleClockRecorded(_ context.Context, event events.Event) error {
	a.logger.Info("ClockRecorded", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleStaffCreated(_ context.Context, event events.Event) error {
	a.logger.Info("StaffCreated", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleStaffDeleted(_ context.Context, event events.Event) error {
	a.logger.Info("StaffDeleted", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}
