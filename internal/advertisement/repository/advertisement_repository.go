package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Gel788/metch-dating-app/internal/advertisement/models"
	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
)

// CreateAd inserts an advertisement
func CreateAd(ad *models.Advertisement) error {
	result := database.DB.Create(ad)
	if result.Error != nil {
		return apperrors.Internal("failed to create advertisement", result.Error.Error())
	}
	return nil
}

// GetAdByID fetches one advertisement, nil when absent
func GetAdByID(id string) (*models.Advertisement, error) {
	var ad models.Advertisement
	result := database.DB.Where("id = ?", id).First(&ad)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch advertisement", result.Error.Error())
	}
	return &ad, nil
}

// ListActive returns running ads, highest priority first
func ListActive(position, userID string, limit int) ([]*models.Advertisement, error) {
	var ads []*models.Advertisement

	query := database.DB.
		Where("is_active = ? AND end_date >= ?", true, time.Now()).
		Order("priority DESC").
		Order("created_at DESC").
		Limit(limit)
	if position != "" {
		query = query.Where("position = ?", position)
	}
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if result := query.Find(&ads); result.Error != nil {
		return nil, apperrors.Internal("failed to list advertisements", result.Error.Error())
	}
	return ads, nil
}

// SaveAd persists advertisement changes
func SaveAd(ad *models.Advertisement) error {
	result := database.DB.Save(ad)
	if result.Error != nil {
		return apperrors.Internal("failed to update advertisement", result.Error.Error())
	}
	return nil
}

// DeleteAd removes an advertisement
func DeleteAd(id string) error {
	result := database.DB.Where("id = ?", id).Delete(&models.Advertisement{})
	if result.Error != nil {
		return apperrors.Internal("failed to delete advertisement", result.Error.Error())
	}
	return nil
}
