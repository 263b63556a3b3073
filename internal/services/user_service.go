package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"plan-tracker.com/plan-tracker/internal/auth"
	dto "plan-tracker.com/plan-tracker/internal/data_models"
	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	model "plan-tracker.com/plan-tracker/internal/models"
	repository "plan-tracker.com/plan-tracker/internal/repositories"
)

type UserService struct {
	userRepo        *repository.UserRepository
	tokenStore      auth.TokenStore
	jwtSecret       []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewUserService(
	userRepo *repository.UserRepository,
	tokenStore auth.TokenStore,
	jwtSecret []byte,
	accessValidity time.Duration,
	refreshValidity time.Duration,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		tokenStore:      tokenStore,
		jwtSecret:       jwtSecret,
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
	}
}

func (s *UserService) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	return s.userRepo.Create(ctx, email, name, hash)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*dto.TokenPairResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user.ID)
}

// Refresh rotates a refresh token: the presented token is revoked and a fresh
// pair is issued for its owner.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	userID, err := s.tokenStore.UserID(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.tokenStore.Revoke(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error revoking refresh token: %w", err)
	}

	return s.issueTokenPair(ctx, userID)
}

func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenStore.Revoke(ctx, refreshToken)
}

func (s *UserService) issueTokenPair(ctx context.Context, userID string) (*dto.TokenPairResponse, error) {
	accessToken, err := auth.GenerateToken(userID, s.jwtSecret, s.accessValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken := uuid.NewString()
	if err := s.tokenStore.Save(ctx, refreshToken, userID, s.refreshValidity); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
