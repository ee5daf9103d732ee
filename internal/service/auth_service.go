package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/acerto/acerto/internal/auth"
	"github.com/acerto/acerto/internal/models"
	"github.com/acerto/acerto/pkg/api"
	"github.com/acerto/acerto/pkg/api/apiconnect"
)

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	users         auth.UserStorage
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, users auth.UserStorage, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Signup creates a new user account and signs it in.
func (s *AuthService) Signup(ctx context.Context, req *connect.Request[api.SignupRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Signup request", "email", req.Msg.Email)

	user, err := s.authenticator.Signup(ctx, auth.SignupInput{
		Name:        req.Msg.Name,
		Email:       req.Msg.Email,
		Password:    req.Msg.Password,
		Confirm:     req.Msg.ConfirmPassword,
		AcceptTerms: req.Msg.AcceptTerms,
	})
	if err != nil {
		return nil, fail(s.logger, "Signup", err, "email", req.Msg.Email)
	}

	resp, err := s.session(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered successfully", "user_id", user.ID)
	return resp, nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		return nil, fail(s.logger, "Login", err, "email", req.Msg.Email)
	}

	resp, err := s.session(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return resp, nil
}

// Me returns the currently authenticated user's information.
func (s *AuthService) Me(ctx context.Context, _ *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		// The token outlived the account.
		s.logger.Warn("Me failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}
	return connect.NewResponse(&api.MeResponse{User: toUser(user)}), nil
}

func (s *AuthService) session(user *models.User) (*connect.Response[api.AuthResponse], error) {
	token, expires, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.AuthResponse{
		Token:     token,
		ExpiresAt: expires,
		User:      toUser(user),
	}), nil
}
