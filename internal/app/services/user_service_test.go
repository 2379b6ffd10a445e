package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
)

type fakeProfileStore struct {
	byUserID  *models.VolunteerProfile
	upserted  *models.VolunteerProfile
	upsertErr error
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, _ int64) (*models.VolunteerProfile, error) {
	return f.byUserID, nil
}

func (f *fakeProfileStore) Upsert(_ context.Context, profile *models.VolunteerProfile) (int64, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	f.upserted = profile
	return 1, nil
}

type fakeUserNameStore struct {
	byID        *models.User
	updatedName [2]string
}

func (f *fakeUserNameStore) FindByID(_ context.Context, _ int64) (*models.User, error) {
	return f.byID, nil
}

func (f *fakeUserNameStore) UpdateName(_ context.Context, _ int64, firstName, lastName string) error {
	f.updatedName = [2]string{firstName, lastName}
	return nil
}

func TestGetProfile_MissingProfileRowIsValid(t *testing.T) {
	users := &fakeUserNameStore{byID: &models.User{ID: 1, FirstName: "Jane", LastName: "Miller"}}
	svc := NewUserService(users, &fakeProfileStore{byUserID: nil}, zerolog.Nop())

	resp, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Jane", resp.FirstName)
	assert.Nil(t, resp.Phone)
	assert.Nil(t, resp.Skills)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	svc := NewUserService(&fakeUserNameStore{byID: nil}, &fakeProfileStore{}, zerolog.Nop())

	_, err := svc.GetProfile(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpdateProfile_CreatesProfileLazily(t *testing.T) {
	users := &fakeUserNameStore{byID: &models.User{ID: 1, FirstName: "Jane", LastName: "Miller"}}
	profiles := &fakeProfileStore{byUserID: nil}
	svc := NewUserService(users, profiles, zerolog.Nop())

	phone := "+31 6 1234 5678"
	resp, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{Phone: &phone})

	require.NoError(t, err)
	require.NotNil(t, profiles.upserted)
	assert.Equal(t, int64(1), profiles.upserted.UserID)
	require.NotNil(t, resp.Phone)
	assert.Equal(t, phone, *resp.Phone)
}

func TestUpdateProfile_MergesExistingFields(t *testing.T) {
	existingPhone := "+31 6 0000 0000"
	existingBio := "Weekend volunteer"
	users := &fakeUserNameStore{byID: &models.User{ID: 1, FirstName: "Jane", LastName: "Miller"}}
	profiles := &fakeProfileStore{
		byUserID: &models.VolunteerProfile{UserID: 1, Phone: &existingPhone, Bio: &existingBio},
	}
	svc := NewUserService(users, profiles, zerolog.Nop())

	location := "Rotterdam"
	resp, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{Location: &location})

	require.NoError(t, err)
	// Untouched fields survive the patch
	require.NotNil(t, resp.Phone)
	assert.Equal(t, existingPhone, *resp.Phone)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, existingBio, *resp.Bio)
	require.NotNil(t, resp.Location)
	assert.Equal(t, location, *resp.Location)
}

func TestUpdateProfile_PatchesName(t *testing.T) {
	users := &fakeUserNameStore{byID: &models.User{ID: 1, FirstName: "Jane", LastName: "Miller"}}
	svc := NewUserService(users, &fakeProfileStore{}, zerolog.Nop())

	first := "Janet"
	resp, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{FirstName: &first})

	require.NoError(t, err)
	assert.Equal(t, [2]string{"Janet", "Miller"}, users.updatedName)
	assert.Equal(t, "Janet", resp.FirstName)
}
