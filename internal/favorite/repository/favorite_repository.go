package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/favorite/models"
)

// CreateFavorite inserts a bookmark; one per user pair
func CreateFavorite(favorite *models.Favorite) error {
	result := database.DB.Create(favorite)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("user is already in favorites")
		}
		return apperrors.Internal("failed to add favorite", result.Error.Error())
	}
	return nil
}

// ListFavorites returns a user's bookmarks, newest first
func ListFavorites(userID string) ([]*models.Favorite, error) {
	var favorites []*models.Favorite
	result := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to list favorites", result.Error.Error())
	}
	return favorites, nil
}

// DeleteFavorite removes a bookmark; removing an absent one is a no-op
func DeleteFavorite(userID, favoritedUserID string) error {
	result := database.DB.
		Where("user_id = ? AND favorited_user_id = ?", userID, favoritedUserID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return apperrors.Internal("failed to remove favorite", result.Error.Error())
	}
	return nil
}
