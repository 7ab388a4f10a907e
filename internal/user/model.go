package user

import "time"

// User represents a registered account joined with its profile row.
type User struct {
	ID           int
	Username     string
	PasswordHash string
	IsAdmin      bool
	Bio          string
	Contact      string
	Status       string
	CreatedAt    time.Time
	LastLogin    *time.Time
}
