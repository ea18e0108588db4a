package models

import "time"

// Advertisement categories
const (
	CategoryProfilePromotion = "PROFILE_PROMOTION"
	CategoryAnnouncement     = "ANNOUNCEMENT"
	CategoryEvent            = "EVENT"
	CategoryService          = "SERVICE"
)

// Advertisement positions
const (
	PositionTopBanner = "TOP_BANNER"
	PositionSidebar   = "SIDEBAR"
	PositionFeed      = "FEED"
	PositionStandard  = "STANDARD"
)

// PricePerDay is the daily rate by position
var PricePerDay = map[string]int{
	PositionTopBanner: 1000,
	PositionSidebar:   500,
	PositionFeed:      300,
	PositionStandard:  100,
}

// Advertisement is a paid placement bought by a subscriber
type Advertisement struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID       string    `gorm:"index;not null;type:varchar(36)" json:"user_id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Category     string    `gorm:"not null" json:"category"`
	Position     string    `gorm:"not null" json:"position"`
	Price        int       `json:"price"`
	Priority     int       `gorm:"default:0" json:"priority"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	TargetGender string    `json:"target_gender,omitempty"`
	EndDate      time.Time `json:"end_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateAdRequest - request to place an ad
type CreateAdRequest struct {
	Title        string `json:"title" binding:"required,min=5,max=100"`
	Description  string `json:"description" binding:"required,min=20,max=1000"`
	Category     string `json:"category" binding:"required,oneof=PROFILE_PROMOTION ANNOUNCEMENT EVENT SERVICE"`
	Position     string `json:"position" binding:"required,oneof=TOP_BANNER SIDEBAR FEED STANDARD"`
	DurationDays int    `json:"duration" binding:"required,min=1,max=90"`
	TargetGender string `json:"targetGender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
}

// ListQuery - ad listing filters
type ListQuery struct {
	Position string `form:"position" binding:"omitempty,oneof=TOP_BANNER SIDEBAR FEED STANDARD"`
	UserOnly bool   `form:"userOnly"`
}

// AdListResponse - page of ads
type AdListResponse struct {
	Advertisements []*Advertisement `json:"advertisements"`
	Total          int              `json:"total"`
}
