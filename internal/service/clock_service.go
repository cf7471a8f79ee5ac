package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/timeclock-service/internal/domain"
	"github.com/spec-kit/timeclock-service/internal/events"
	"github.com/spec-kit/timeclock-service/internal/repository"
)

// ClockService records clock events and serves history views. It does not
// enforce in/out alternation; whatever clock_type arrives is recorded.
type ClockService struct {
	clocks     repository.ClockEventRepository
	dispatcher events.Dispatcher
}

// NewClockService constructs the service.
func NewClockService(clocks repository.ClockEventRepository, dispatcher events.Dispatcher) *ClockService {
	return &ClockService{clocks: clocks, dispatcher: dispatcher}
}

// Record inserts one clock event for the user at the current UTC time.
func (s *ClockService) Record(ctx context.Context, userID string, clockType domain.ClockType) (*domain.ClockEvent, error) {
	event := &domain.ClockEvent{
		UserID:     userID,
		ClockType:  clockType,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.clocks.Create(ctx, event); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventClockRecorded,
			UserID:    userID,
			Timestamp: time.Now().UTC(),
			Payload: events.ClockRecordedPayload{
				EventID:    event.ID,
				ClockType:  event.ClockType,
				RecordedAt: event.RecordedAt,
			},
		})
	}
	return event, nil
}

// HistoryForUser lists one user's events newest-first.
func (s *ClockService) HistoryForUser(ctx context.Context, userID string) ([]domain.ClockEvent, error) {
	return s.clocks.ListByUser(ctx, userID)
}

// CombinedHistory lists every user's events newest-first.
func (s *ClockService) CombinedHistory(ctx context.Context) ([]domain.ClockEvent, error) {
	return s.clocks.ListAll(ctx)
}
