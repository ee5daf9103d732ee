package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/email"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/internal/storage"
)

var (
	ErrInvalidCredentials = apperr.Unauthorized("E-mail ou senha inválidos.")
	ErrEmailExists        = apperr.Conflict("Este e-mail já está cadastrado.")
)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	clock   ids.Clock
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage, clock ids.Clock) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		clock:   clock,
		cost:    bcrypt.DefaultCost,
	}
}

// Signup creates a new user account with a hashed password. E-mails are
// stored lower-cased.
func (a *PasswordAuthenticator) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := ValidateSignup(in); err != nil {
		return nil, err
	}
	addr := email.Canonical(in.Email)

	// Check if email already exists
	_, err := a.storage.GetUserByEmail(ctx, addr)
	switch {
	case err == nil:
		return nil, ErrEmailExists
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(ids.New(), addr, strings.TrimSpace(in.Name), string(hashedPassword), a.clock())
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies the email and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, addr, credential string) (*models.User, error) {
	if err := ValidateLogin(strings.TrimSpace(addr), credential); err != nil {
		return nil, err
	}

	user, err := a.storage.GetUserByEmail(ctx, email.Canonical(addr))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Compare password hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
