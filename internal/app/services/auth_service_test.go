package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/app/repositories"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
	"github.com/derin/volunteerhub/internal/pkg/auth"
)

type fakeUserStore struct {
	createErr    error
	created      []*models.User
	byID         *models.User
	byEmail      *models.User
	lastLoginIDs []int64
	lastLoginErr error
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	user.ID = int64(len(f.created) + 1)
	f.created = append(f.created, user)
	f.byID = user
	return user.ID, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, _ int64) (*models.User, error) {
	return f.byID, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	return f.byEmail, nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id int64) error {
	if f.lastLoginErr != nil {
		return f.lastLoginErr
	}
	f.lastLoginIDs = append(f.lastLoginIDs, id)
	return nil
}

type fakeTokenStore struct {
	saved     []string
	byToken   *repositories.RefreshToken
	findErr   error
	revoked   []string
	revokeErr error
}

func (f *fakeTokenStore) Save(_ context.Context, _ int64, token string, _ time.Time) error {
	f.saved = append(f.saved, token)
	return nil
}

func (f *fakeTokenStore) FindByToken(_ context.Context, token string) (*repositories.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byToken, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, token string) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.revoked = append(f.revoked, token)
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "volunteerhub.test",
	})
}

func TestRegister_AssignsVolunteerRole(t *testing.T) {
	users := &fakeUserStore{}
	svc := NewAuthService(users, &fakeTokenStore{}, testJWTService(), zerolog.Nop())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "jane@volunteerhub.org",
		Password:  "Secret123!",
		FirstName: "Jane",
		LastName:  "Miller",
	})

	require.NoError(t, err)
	require.Len(t, users.created, 1)
	assert.Equal(t, models.RoleVolunteer, users.created[0].RoleType)
	assert.True(t, users.created[0].IsActive)
	// Stored password is a hash, never the plaintext
	assert.NotEqual(t, "Secret123!", users.created[0].Password)
	assert.Equal(t, string(models.RoleVolunteer), resp.RoleType)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &fakeUserStore{createErr: apperrors.ErrEmailAlreadyExists}
	svc := NewAuthService(users, &fakeTokenStore{}, testJWTService(), zerolog.Nop())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "jane@volunteerhub.org",
		Password: "Secret123!",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:       1,
		Email:    "jane@volunteerhub.org",
		Password: hashed,
		RoleType: models.RoleVolunteer,
		IsActive: true,
	}
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	users := &fakeUserStore{byEmail: activeUser(t, "Secret123!")}
	tokens := &fakeTokenStore{}
	svc := NewAuthService(users, tokens, testJWTService(), zerolog.Nop())

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@volunteerhub.org",
		Password: "Secret123!",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	// The issued refresh token is persisted for later exchange
	require.Len(t, tokens.saved, 1)
	assert.Equal(t, resp.RefreshToken, tokens.saved[0])
	assert.Equal(t, []int64{1}, users.lastLoginIDs)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &fakeUserStore{byEmail: activeUser(t, "Secret123!")}
	svc := NewAuthService(users, &fakeTokenStore{}, testJWTService(), zerolog.Nop())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@volunteerhub.org",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{byEmail: nil}, &fakeTokenStore{}, testJWTService(), zerolog.Nop())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@volunteerhub.org",
		Password: "Secret123!",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	user := activeUser(t, "Secret123!")
	user.IsActive = false
	svc := NewAuthService(&fakeUserStore{byEmail: user}, &fakeTokenStore{}, testJWTService(), zerolog.Nop())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@volunteerhub.org",
		Password: "Secret123!",
	})

	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestLogin_LastLoginFailureIsNonFatal(t *testing.T) {
	users := &fakeUserStore{byEmail: activeUser(t, "Secret123!"), lastLoginErr: apperrors.ErrStoreUnavailable}
	svc := NewAuthService(users, &fakeTokenStore{}, testJWTService(), zerolog.Nop())

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@volunteerhub.org",
		Password: "Secret123!",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshToken_RevokesOldToken(t *testing.T) {
	user := activeUser(t, "Secret123!")
	users := &fakeUserStore{byID: user}
	tokens := &fakeTokenStore{
		byToken: &repositories.RefreshToken{UserID: user.ID, Token: "old-token"},
	}
	svc := NewAuthService(users, tokens, testJWTService(), zerolog.Nop())

	resp, err := svc.RefreshToken(context.Background(), "old-token")

	require.NoError(t, err)
	assert.Equal(t, []string{"old-token"}, tokens.revoked)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, "old-token", resp.RefreshToken)
}

func TestRefreshToken_Expired(t *testing.T) {
	tokens := &fakeTokenStore{findErr: apperrors.ErrTokenExpired}
	svc := NewAuthService(&fakeUserStore{}, tokens, testJWTService(), zerolog.Nop())

	_, err := svc.RefreshToken(context.Background(), "stale-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
