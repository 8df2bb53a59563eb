package models

import "time"

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user account stored in finpilot-server.
type User struct {
	UserID       string    `json:"user_id" badgerhold:"key"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
