package domain

import "time"

// ClockType marks the direction of a clock event.
type ClockType string

const (
	ClockTypeIn  ClockType = "in"
	ClockTypeOut ClockType = "out"
)

// ClockEvent is one timestamped clock-in or clock-out record for a user.
// Events are immutable after creation. Alternation of in/out is not enforced.
type ClockEvent struct {
	ID         string
	UserID     string
	ClockType  ClockType
	RecordedAt time.Time

	// Username is populated by combined-history queries that join users.
	Username string
}
