package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gel788/metch-dating-app/internal/advertisement/models"
	"github.com/Gel788/metch-dating-app/internal/advertisement/repository"
	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
	premiummodels "github.com/Gel788/metch-dating-app/internal/premium/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, database.InitWithType("sqlite", ":memory:"))
	require.NoError(t, database.DB.AutoMigrate(&models.Advertisement{}, &premiummodels.Premium{}))
}

func activatePremium(t *testing.T, userID string) {
	t.Helper()
	premium := &premiummodels.Premium{
		ID:       uuid.New().String(),
		UserID:   userID,
		Plan:     "BASIC",
		EndDate:  time.Now().AddDate(0, 1, 0),
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(premium).Error)
}

func validAdRequest() models.CreateAdRequest {
	return models.CreateAdRequest{
		Title:        "Evening companion wanted",
		Description:  "Looking for pleasant company for theatre evenings and dinners.",
		Category:     models.CategoryAnnouncement,
		Position:     models.PositionSidebar,
		DurationDays: 7,
	}
}

func TestCreateAdComputesPrice(t *testing.T) {
	setupTestDB(t)
	activatePremium(t, "alice")

	ad, err := CreateAd("alice", validAdRequest())
	require.NoError(t, err)
	assert.Equal(t, models.PricePerDay[models.PositionSidebar]*7, ad.Price)
	assert.True(t, ad.IsActive)

	expectedEnd := time.Now().AddDate(0, 0, 7)
	assert.WithinDuration(t, expectedEnd, ad.EndDate, time.Minute)
}

func TestCreateAdRequiresPremium(t *testing.T) {
	setupTestDB(t)

	_, err := CreateAd("alice", validAdRequest())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Status)
}

func TestCreateAdRejectsOutOfRangeFields(t *testing.T) {
	setupTestDB(t)
	activatePremium(t, "alice")

	cases := []struct {
		name   string
		mutate func(*models.CreateAdRequest)
	}{
		{"short title", func(r *models.CreateAdRequest) { r.Title = "Hi" }},
		{"short description", func(r *models.CreateAdRequest) { r.Description = "too short" }},
		{"zero duration", func(r *models.CreateAdRequest) { r.DurationDays = 0 }},
		{"too long duration", func(r *models.CreateAdRequest) { r.DurationDays = 91 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validAdRequest()
			tc.mutate(&req)
			_, err := CreateAd("alice", req)
			require.Error(t, err)
			appErr, ok := err.(*apperrors.AppError)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.Status)
		})
	}
}

func TestDeactivateAdOwnerOnly(t *testing.T) {
	setupTestDB(t)
	activatePremium(t, "alice")

	ad, err := CreateAd("alice", validAdRequest())
	require.NoError(t, err)

	err = DeactivateAd("mallory", ad.ID)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Status)

	require.NoError(t, DeactivateAd("alice", ad.ID))
	reloaded, err := repository.GetAdByID(ad.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
}
