package domain

import (
	"context"
)

// User represents a registered rider
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// UserRepository checks rider credentials
type UserRepository interface {
	// Authenticate returns ErrInvalidCredentials when no user matches
	Authenticate(ctx context.Context, email, password string) (*User, error)
}
