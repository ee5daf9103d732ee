package models

import "time"

// User represents a registered account. Its ID owns groups.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name given at signup.
	Name string

	// Email is unique and stored lower-cased. Used for login.
	Email string

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user with a fresh ID and timestamps.
func NewUser(id, email, name, passwordHash string, now time.Time) *User {
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
