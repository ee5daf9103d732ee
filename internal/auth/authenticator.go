package auth

import (
	"context"

	"github.com/acerto/acerto/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Signup validates the signup form and creates the account.
	Signup(ctx context.Context, in SignupInput) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}

// SignupInput mirrors the signup form.
type SignupInput struct {
	Name        string
	Email       string
	Password    string
	Confirm     string
	AcceptTerms bool
}
