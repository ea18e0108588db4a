package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/premium/models"
)

// GetByUserID fetches a user's subscription, nil when absent
func GetByUserID(userID string) (*models.Premium, error) {
	var premium models.Premium
	result := database.DB.Where("user_id = ?", userID).First(&premium)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch premium", result.Error.Error())
	}
	return &premium, nil
}

// CreatePremium inserts a subscription record
func CreatePremium(premium *models.Premium) error {
	result := database.DB.Create(premium)
	if result.Error != nil {
		return apperrors.Internal("failed to create premium", result.Error.Error())
	}
	return nil
}

// SavePremium persists subscription changes
func SavePremium(premium *models.Premium) error {
	result := database.DB.Save(premium)
	if result.Error != nil {
		return apperrors.Internal("failed to update premium", result.Error.Error())
	}
	return nil
}

// IsActive reports whether the user holds a live subscription. A lapsed
// record is deactivated on read.
func IsActive(userID string) (bool, error) {
	premium, err := GetByUserID(userID)
	if err != nil {
		return false, err
	}
	if premium == nil || !premium.IsActive {
		return false, nil
	}
	if premium.Expired() {
		premium.IsActive = false
		if err := SavePremium(premium); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}
