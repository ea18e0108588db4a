package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/profile/models"
)

// CreateProfile inserts a new profile
func CreateProfile(profile *models.Profile) error {
	result := database.DB.Create(profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("profile already exists for this user")
		}
		return apperrors.Internal("failed to create profile", result.Error.Error())
	}
	return nil
}

// GetProfileByUserID fetches a profile with its photos, nil when absent
func GetProfileByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	result := database.DB.Preload("Photos").Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch profile", result.Error.Error())
	}
	return &profile, nil
}

// SaveProfile persists profile field changes
func SaveProfile(profile *models.Profile) error {
	result := database.DB.Save(profile)
	if result.Error != nil {
		return apperrors.Internal("failed to update profile", result.Error.Error())
	}
	return nil
}

// ListProfiles returns profiles excluding the given user ids, newest first
func ListProfiles(excludeUserIDs []string, gender, city string, limit int) ([]*models.Profile, error) {
	var profiles []*models.Profile

	query := database.DB.Preload("Photos").Order("created_at DESC").Limit(limit)
	if len(excludeUserIDs) > 0 {
		query = query.Where("user_id NOT IN ?", excludeUserIDs)
	}
	if gender != "" {
		query = query.Where("gender = ?", gender)
	}
	if city != "" {
		query = query.Where("city = ?", city)
	}

	if result := query.Find(&profiles); result.Error != nil {
		return nil, apperrors.Internal("failed to list profiles", result.Error.Error())
	}
	return profiles, nil
}

// IncrementLikesCount bumps the denormalized likes counter on a profile
func IncrementLikesCount(userID string) error {
	result := database.DB.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + 1"))
	if result.Error != nil {
		return apperrors.Internal("failed to update likes count", result.Error.Error())
	}
	return nil
}

// AddPhoto attaches a photo record to a profile
func AddPhoto(photo *models.Photo) error {
	result := database.DB.Create(photo)
	if result.Error != nil {
		return apperrors.Internal("failed to add photo", result.Error.Error())
	}
	return nil
}

// RecordView stores a profile view
func RecordView(view *models.ProfileView) error {
	result := database.DB.Create(view)
	if result.Error != nil {
		return apperrors.Internal("failed to record profile view", result.Error.Error())
	}
	return nil
}

// ListViewsOf returns the most recent views of a user's profile
func ListViewsOf(viewedID string, limit int) ([]*models.ProfileView, error) {
	var views []*models.ProfileView
	result := database.DB.
		Where("viewed_id = ?", viewedID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&views)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to list profile views", result.Error.Error())
	}
	return views, nil
}

// CreateBlock stores a block; duplicate blocks are not an error
func CreateBlock(block *models.Block) error {
	result := database.DB.Create(block)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil
		}
		return apperrors.Internal("failed to create block", result.Error.Error())
	}
	return nil
}

// BlockedUserIDs returns every user id blocked by or blocking the given user
func BlockedUserIDs(userID string) ([]string, error) {
	var blocks []*models.Block
	result := database.DB.
		Where("blocker_id = ? OR blocked_id = ?", userID, userID).
		Find(&blocks)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to list blocks", result.Error.Error())
	}

	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.BlockerID == userID {
			ids = append(ids, b.BlockedID)
		} else {
			ids = append(ids, b.BlockerID)
		}
	}
	return ids, nil
}
