package services

import (
	"context"
	"errors"
	"fmt"

	"movie-recommendation/internal/auth"
	"movie-recommendation/internal/models"
	"movie-recommendation/internal/repository"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	// Authenticate resolves an access token to the id of an existing user.
	Authenticate(ctx context.Context, accessToken string) (uint, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, logger *logrus.Logger) AuthService {
	return &authService{users: users, tokens: tokens, logger: logger}
}

func (s *authService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username already exists: %w", models.ErrDuplicateEntry)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateWithProfile(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, fmt.Errorf("username already exists: %w", models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := auth.CheckPasswordHash(user.PasswordHash, password); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return pair, nil
}

func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.Validate(refreshToken, auth.RefreshToken)
	if err != nil {
		return "", err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return "", err
	}
	return s.tokens.Refresh(refreshToken)
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (uint, error) {
	userID, err := s.tokens.Validate(accessToken, auth.AccessToken)
	if err != nil {
		return 0, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return 0, err
	}
	return userID, nil
}

func (s *authService) ensureUser(ctx context.Context, userID uint) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: user no longer exists", models.ErrInvalidToken)
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	return nil
}
