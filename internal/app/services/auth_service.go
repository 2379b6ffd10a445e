package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/app/repositories"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
	"github.com/derin/volunteerhub/internal/pkg/auth"
)

// userStore is the account persistence surface the auth service depends on
type userStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

// tokenStore is the refresh token persistence surface the auth service depends on
type tokenStore interface {
	Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	FindByToken(ctx context.Context, token string) (*repositories.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   userStore
	tokenRepo  tokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo userStore,
	tokenRepo tokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new volunteer account. Admin accounts are not created
// through self-registration; they come from seeding or operator action.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  models.RoleVolunteer,
		IsActive:  true,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return nil, err
	}

	created, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", id).Str("email", req.Email).Msg("User registered")

	return mapUserToResponse(created), nil
}

// Login authenticates a user and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to look up user")
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Non-fatal, the login itself succeeded
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")

	return tokens, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The old refresh token is revoked (single use).
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to revoke refresh token")
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	if err := s.tokenRepo.Save(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             mapUserToResponse(user),
	}, nil
}

// mapUserToResponse converts a user model to its public representation
func mapUserToResponse(user *models.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RoleType:  string(user.RoleType),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
