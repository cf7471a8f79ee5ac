package domain

import "time"

// User is the domain model for staff and admin accounts. The IsAdmin flag is
// the only distinction between the two roles.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
