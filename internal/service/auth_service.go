package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"b1-flyer/internal/auth"
	"b1-flyer/internal/model"
	"b1-flyer/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up email")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")

	return &model.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	}, nil
}

// Login verifies credentials and returns a fresh token.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Msg("invalid login attempt")
		return nil, model.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to record login")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &model.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	}, nil
}

// Profile retrieves the account of userID.
func (s *authService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies the present name fields.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.User, error) {
	trimPtr(req.FirstName)
	trimPtr(req.LastName)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Authenticate resolves token to the identity of a user that still exists.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, model.ErrUnauthenticated
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("token rejected")
		return nil, model.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to load token subject")
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if user == nil {
		s.logger.Debug().Str("user_id", claims.UserID).Msg("token subject no longer exists")
		return nil, model.ErrInvalidToken
	}

	return &model.Identity{UserID: user.ID, Email: user.Email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
