package events

import (
	"time"

	"github.com/spec-kit/timeclock-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventClockRecorded EventType = "clock_recorded"
	EventStaffCreated  EventType = "staff_created"
	EventStaffDeleted  EventType = "staff_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ClockRecordedPayload payload.
type ClockRecordedPayload struct {
	EventID    string           `json:"event_id"`
	ClockType  domain.ClockType `json:"clock_type"`
	RecordedAt time.Time        `json:"recorded_at"`
}

// StaffCreatedPayload payload.
type StaffCreatedPayload struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// StaffDeletedPayload payload.
type StaffDeletedPayload struct {
	DeletedBy string `json:"deleted_by"`
}
