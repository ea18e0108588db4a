package models

import (
	"time"

	profilemodels "github.com/Gel788/metch-dating-app/internal/profile/models"
)

// Swipe actions
const (
	ActionLike      = "LIKE"
	ActionDislike   = "DISLIKE"
	ActionSuperlike = "SUPERLIKE"
)

// Swipe is one directed swipe decision
type Swipe struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FromUserID string    `gorm:"uniqueIndex:idx_swipe_pair;not null;type:varchar(36)" json:"from_user_id"`
	ToUserID   string    `gorm:"uniqueIndex:idx_swipe_pair;not null;type:varchar(36)" json:"to_user_id"`
	Action     string    `gorm:"not null" json:"action"`
	IsMatch    bool      `gorm:"default:false" json:"is_match"`
	CreatedAt  time.Time `json:"created_at"`
}

// Like is a received like, kept alongside swipes for the likes listing
type Like struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	GiverID    string    `gorm:"uniqueIndex:idx_like_pair;not null;type:varchar(36)" json:"giver_id"`
	ReceiverID string    `gorm:"uniqueIndex:idx_like_pair;not null;type:varchar(36)" json:"receiver_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// SwipeRequest - request to record a swipe decision
type SwipeRequest struct {
	ToUserID string `json:"toUserId" binding:"required"`
	Action   string `json:"action" binding:"required,oneof=LIKE DISLIKE SUPERLIKE"`
}

// SwipeResponse - swipe result with match flag
type SwipeResponse struct {
	Success bool   `json:"success"`
	IsMatch bool   `json:"isMatch"`
	Swipe   *Swipe `json:"swipe"`
}

// NextProfileResponse - the next candidate to show
type NextProfileResponse struct {
	Profile *profilemodels.Profile `json:"profile"`
	Message string                 `json:"message,omitempty"`
}

// LikesResponse - likes received by the caller
type LikesResponse struct {
	Likes []*Like `json:"likes"`
	Total int     `json:"total"`
}
