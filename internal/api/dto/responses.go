package dto

import "time"

// UserResponse is the public view of an account. Password hashes never leave
// the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// ClockEventResponse is one row of a history view.
type ClockEventResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ClockType string    `json:"clock_type"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username,omitempty"`
}
