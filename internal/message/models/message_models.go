package models

import "time"

// FreeDailyMessageLimit caps sends per day for users without an active
// subscription.
const FreeDailyMessageLimit = 10

// Message is one persisted chat message between two users
type Message struct {
	ID         string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SenderID   string     `gorm:"index;not null;type:varchar(36)" json:"senderId"`
	ReceiverID string     `gorm:"index;not null;type:varchar(36)" json:"receiverId"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	IsRead     bool       `gorm:"default:false" json:"isRead"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// SendMessageRequest - request to send a message
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required,min=1,max=5000"`
}

// Dialogue summarizes one conversation for the inbox listing
type Dialogue struct {
	UserID      string   `json:"userId"`
	LastMessage *Message `json:"lastMessage"`
	UnreadCount int      `json:"unreadCount"`
}

// ConversationResponse - full message history with one user
type ConversationResponse struct {
	Messages []*Message `json:"messages"`
	Total    int        `json:"total"`
}
