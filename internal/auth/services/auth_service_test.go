package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gel788/metch-dating-app/internal/auth"
	authmodels "github.com/Gel788/metch-dating-app/internal/auth/models"
	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
	profilemodels "github.com/Gel788/metch-dating-app/internal/profile/models"
	profilerepo "github.com/Gel788/metch-dating-app/internal/profile/repository"
)

func newTestService(t *testing.T) (*Service, *auth.JWTService) {
	t.Helper()
	require.NoError(t, database.InitWithType("sqlite", ":memory:"))
	require.NoError(t, database.DB.AutoMigrate(
		&authmodels.User{},
		&profilemodels.Profile{},
		&profilemodels.Photo{},
	))

	jwtService := auth.NewJWTService("test-secret", time.Hour, "metch-test")
	return NewService(jwtService), jwtService
}

func validSignup() authmodels.SignupRequest {
	return authmodels.SignupRequest{
		Email:      "anna@example.com",
		Password:   "secret123",
		Name:       "Anna",
		Gender:     profilemodels.GenderFemale,
		BirthDate:  "1995-03-15",
		LookingFor: profilemodels.LookingForSponsor,
	}
}

func TestSignupCreatesAccountAndProfile(t *testing.T) {
	service, jwtService := newTestService(t)

	resp, err := service.Signup(validSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "anna@example.com", resp.User.Email)

	// The token carries the new account's identity.
	claims, err := jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	// The initial profile exists with the signup fields.
	profile, err := profilerepo.GetProfileByUserID(resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Anna", profile.Name)
	assert.Equal(t, profilemodels.GenderFemale, profile.Gender)
	assert.Equal(t, profilemodels.LookingForSponsor, profile.LookingFor)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Signup(validSignup())
	require.NoError(t, err)

	_, err = service.Signup(validSignup())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	service, _ := newTestService(t)

	req := validSignup()
	req.Password = "abc"
	_, err := service.Signup(req)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)

	// The account was not created.
	user, err := service.Signin(authmodels.SigninRequest{Email: req.Email, Password: "abc"})
	require.Error(t, err)
	assert.Nil(t, user)
}

func TestSignupRejectsBadBirthDate(t *testing.T) {
	service, _ := newTestService(t)

	req := validSignup()
	req.BirthDate = "15.03.1995"
	_, err := service.Signup(req)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
}

func TestSigninRoundTrip(t *testing.T) {
	service, jwtService := newTestService(t)

	created, err := service.Signup(validSignup())
	require.NoError(t, err)

	resp, err := service.Signin(authmodels.SigninRequest{
		Email:    "anna@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, claims.UserID)
}

func TestSigninWrongPassword(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Signup(validSignup())
	require.NoError(t, err)

	_, err = service.Signin(authmodels.SigninRequest{
		Email:    "anna@example.com",
		Password: "not-the-password",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)
}

func TestSigninUnknownEmail(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Signin(authmodels.SigninRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)
}
