package models

import "time"

// Gender values
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// LookingFor values
const (
	LookingForSponsor      = "SPONSOR"
	LookingForCompanion    = "COMPANION"
	LookingForFriendship   = "FRIENDSHIP"
	LookingForRelationship = "RELATIONSHIP"
)

// Profile is the public-facing record attached to one account
type Profile struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string    `gorm:"unique;not null;type:varchar(36)" json:"user_id"`
	Name       string    `gorm:"not null" json:"name"`
	Gender     string    `gorm:"not null" json:"gender"`
	BirthDate  time.Time `json:"birth_date"`
	LookingFor string    `gorm:"not null" json:"looking_for"`
	City       string    `json:"city"`
	Bio        string    `gorm:"type:text" json:"bio"`
	Interests  string    `gorm:"type:text" json:"interests"` // JSON array
	Occupation string    `json:"occupation"`
	Education  string    `json:"education"`
	AvatarURL  string    `json:"avatar_url"`
	LikesCount int       `gorm:"default:0" json:"likes_count"`
	Photos     []Photo   `gorm:"foreignKey:ProfileID" json:"photos,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Photo is one gallery image on a profile
type Photo struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ProfileID string    `gorm:"index;not null;type:varchar(36)" json:"profile_id"`
	URL       string    `gorm:"not null" json:"url"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileView records one user opening another user's profile
type ProfileView struct {
	ID       string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ViewerID string    `gorm:"index;not null;type:varchar(36)" json:"viewer_id"`
	ViewedID string    `gorm:"index;not null;type:varchar(36)" json:"viewed_id"`
	ViewedAt time.Time `json:"viewed_at"`
}

// Block hides two users from each other in both directions
type Block struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	BlockerID string    `gorm:"uniqueIndex:idx_block_pair;not null;type:varchar(36)" json:"blocker_id"`
	BlockedID string    `gorm:"uniqueIndex:idx_block_pair;not null;type:varchar(36)" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest - partial profile update; zero values are skipped
type UpdateProfileRequest struct {
	Name       string   `json:"name" binding:"omitempty,min=2,max=100"`
	City       string   `json:"city" binding:"omitempty,max=100"`
	Bio        string   `json:"bio" binding:"omitempty,max=2000"`
	Interests  []string `json:"interests"`
	Occupation string   `json:"occupation" binding:"omitempty,max=100"`
	Education  string   `json:"education" binding:"omitempty,max=100"`
	AvatarURL  string   `json:"avatarUrl"`
	LookingFor string   `json:"lookingFor" binding:"omitempty,oneof=SPONSOR COMPANION FRIENDSHIP RELATIONSHIP"`
}

// AddPhotoRequest - request to attach a photo record
type AddPhotoRequest struct {
	URL      string `json:"url" binding:"required"`
	Position int    `json:"position" binding:"omitempty,min=0,max=20"`
}

// BlockRequest - request to block a user
type BlockRequest struct {
	BlockedID string `json:"blockedId" binding:"required"`
}

// BrowseQuery - profile listing filters
type BrowseQuery struct {
	Gender string `form:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	City   string `form:"city"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ProfileListResponse - page of profiles
type ProfileListResponse struct {
	Profiles []*Profile `json:"profiles"`
	Total    int        `json:"total"`
}

// ProfileViewsResponse - who viewed me
type ProfileViewsResponse struct {
	Views []*ProfileView `json:"views"`
	Total int            `json:"total"`
}
