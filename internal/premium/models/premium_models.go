package models

import "time"

// Plan describes one subscription tier
type Plan struct {
	Months int `json:"months"`
	Price  int `json:"price"`
}

// Plans are the purchasable subscription tiers.
var Plans = map[string]Plan{
	"BASIC":    {Months: 1, Price: 500},
	"STANDARD": {Months: 3, Price: 1200},
	"PREMIUM":  {Months: 6, Price: 2000},
	"VIP":      {Months: 12, Price: 3500},
}

// Premium is a user's subscription record, one row per user
type Premium struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"unique;not null;type:varchar(36)" json:"user_id"`
	Plan      string    `gorm:"not null" json:"plan"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the subscription window has passed
func (p *Premium) Expired() bool {
	return time.Now().After(p.EndDate)
}

// ActivateRequest - request to purchase or extend a subscription
type ActivateRequest struct {
	Plan string `json:"plan" binding:"required,oneof=BASIC STANDARD PREMIUM VIP"`
}

// StatusResponse - current subscription and the plan catalogue
type StatusResponse struct {
	Premium *Premium        `json:"premium"`
	Plans   map[string]Plan `json:"plans"`
}

// ActivateResponse - result of a purchase
type ActivateResponse struct {
	Message string   `json:"message"`
	Premium *Premium `json:"premium"`
}
