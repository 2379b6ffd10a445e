package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
)

// profileStore is the volunteer profile persistence surface the user service depends on
type profileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.VolunteerProfile, error)
	Upsert(ctx context.Context, profile *models.VolunteerProfile) (int64, error)
}

// userNameStore extends account lookups with the name update the profile save needs
type userNameStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpdateName(ctx context.Context, id int64, firstName, lastName string) error
}

// UserService defines the interface for account and profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo    userNameStore
	profileRepo profileStore
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo userNameStore, profileRepo profileStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// GetProfile returns the account with its volunteer profile. A user who
// never saved a profile gets the account fields with empty profile fields;
// the missing row is not an error.
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return mapProfileToResponse(user, profile), nil
}

// UpdateProfile applies non-nil fields to the account and its profile.
// The profile row is created lazily on the first save.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if req.FirstName != nil || req.LastName != nil {
		firstName := user.FirstName
		lastName := user.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if err := s.userRepo.UpdateName(ctx, userID, firstName, lastName); err != nil {
			return nil, err
		}
		user.FirstName = firstName
		user.LastName = lastName
	}

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &models.VolunteerProfile{UserID: userID}
	if existing != nil {
		profile.Phone = existing.Phone
		profile.Location = existing.Location
		profile.Skills = existing.Skills
		profile.Bio = existing.Bio
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.Location != nil {
		profile.Location = req.Location
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}

	if _, err := s.profileRepo.Upsert(ctx, profile); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to save volunteer profile")
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")

	return mapProfileToResponse(user, profile), nil
}

func mapProfileToResponse(user *models.User, profile *models.VolunteerProfile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		UserResponse: *mapUserToResponse(user),
	}
	if profile != nil {
		resp.Phone = profile.Phone
		resp.Location = profile.Location
		resp.Skills = profile.Skills
		resp.Bio = profile.Bio
	}
	return resp
}
