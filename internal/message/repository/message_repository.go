package repository

import (
	"time"

	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/message/models"
)

// CreateMessage persists a message
func CreateMessage(message *models.Message) error {
	result := database.DB.Create(message)
	if result.Error != nil {
		return apperrors.Internal("failed to create message", result.Error.Error())
	}
	return nil
}

// Conversation returns the full history between two users, oldest first
func Conversation(userA, userB string) ([]*models.Message, error) {
	var messages []*models.Message
	result := database.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to fetch conversation", result.Error.Error())
	}
	return messages, nil
}

// MarkRead flags every unread message from one user to another as read
func MarkRead(fromUserID, toUserID string) error {
	now := time.Now()
	result := database.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", fromUserID, toUserID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	if result.Error != nil {
		return apperrors.Internal("failed to mark messages read", result.Error.Error())
	}
	return nil
}

// AllInvolving returns every message sent or received by a user, newest
// first, for dialogue grouping
func AllInvolving(userID string) ([]*models.Message, error) {
	var messages []*models.Message
	result := database.DB.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to fetch messages", result.Error.Error())
	}
	return messages, nil
}

// CountSentSince counts messages a user sent at or after the given time
func CountSentSince(senderID string, since time.Time) (int64, error) {
	var count int64
	result := database.DB.Model(&models.Message{}).
		Where("sender_id = ? AND created_at >= ?", senderID, since).
		Count(&count)
	if result.Error != nil {
		return 0, apperrors.Internal("failed to count sent messages", result.Error.Error())
	}
	return count, nil
}
