package models

import (
	"time"

	profilemodels "github.com/Gel788/metch-dating-app/internal/profile/models"
)

// Favorite bookmarks another user's profile for the owner
type Favorite struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string    `gorm:"uniqueIndex:idx_favorite_pair;not null;type:varchar(36)" json:"userId"`
	FavoritedUserID string    `gorm:"uniqueIndex:idx_favorite_pair;not null;type:varchar(36)" json:"favoritedUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AddFavoriteRequest - request to bookmark a user
type AddFavoriteRequest struct {
	FavoritedUserID string `json:"favoritedUserId" binding:"required"`
}

// FavoriteEntry pairs a bookmark with the bookmarked user's profile.
// Profile is nil when the user no longer has one.
type FavoriteEntry struct {
	Favorite *Favorite              `json:"favorite"`
	Profile  *profilemodels.Profile `json:"profile,omitempty"`
}

// FavoritesResponse - the caller's bookmarks, newest first
type FavoritesResponse struct {
	Favorites []*FavoriteEntry `json:"favorites"`
	Total     int              `json:"total"`
}
