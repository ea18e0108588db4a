package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/swipe/models"
)

// CreateSwipe inserts a swipe; a repeated swipe on the same pair conflicts
func CreateSwipe(swipe *models.Swipe) error {
	result := database.DB.Create(swipe)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("already swiped on this user")
		}
		return apperrors.Internal("failed to create swipe", result.Error.Error())
	}
	return nil
}

// GetSwipe fetches the swipe from one user to another, nil when absent
func GetSwipe(fromUserID, toUserID string) (*models.Swipe, error) {
	var swipe models.Swipe
	result := database.DB.
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		First(&swipe)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch swipe", result.Error.Error())
	}
	return &swipe, nil
}

// MarkPairMatched flags both directions of a pair as matched
func MarkPairMatched(userA, userB string) error {
	result := database.DB.Model(&models.Swipe{}).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Update("is_match", true)
	if result.Error != nil {
		return apperrors.Internal("failed to mark match", result.Error.Error())
	}
	return nil
}

// SwipedUserIDs returns every user the given user has already swiped on
func SwipedUserIDs(fromUserID string) ([]string, error) {
	var ids []string
	result := database.DB.Model(&models.Swipe{}).
		Where("from_user_id = ?", fromUserID).
		Pluck("to_user_id", &ids)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to list swipes", result.Error.Error())
	}
	return ids, nil
}

// DeleteDislikes clears a user's DISLIKE swipes so candidates reappear
func DeleteDislikes(fromUserID string) error {
	result := database.DB.
		Where("from_user_id = ? AND action = ?", fromUserID, models.ActionDislike).
		Delete(&models.Swipe{})
	if result.Error != nil {
		return apperrors.Internal("failed to reset dislikes", result.Error.Error())
	}
	return nil
}

// CreateLike inserts a like; duplicates are not an error
func CreateLike(like *models.Like) (bool, error) {
	result := database.DB.Create(like)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, apperrors.Internal("failed to create like", result.Error.Error())
	}
	return true, nil
}

// LikesReceived lists likes received by a user, newest first
func LikesReceived(receiverID string, limit int) ([]*models.Like, error) {
	var likes []*models.Like
	result := database.DB.
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Limit(limit).
		Find(&likes)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to list likes", result.Error.Error())
	}
	return likes, nil
}
