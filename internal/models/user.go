package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered building manager.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the manager's email address (unique).
	// Used for login.
	Email string

	// DisplayName is shown in the dashboard header.
	DisplayName string

	// PasswordHash is the bcrypt hash of the password. Never returned to clients.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewUser builds a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
