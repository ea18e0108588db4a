package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/favorite/models"
	"github.com/Gel788/metch-dating-app/internal/favorite/repository"
	profilerepo "github.com/Gel788/metch-dating-app/internal/profile/repository"
)

// AddFavorite bookmarks another user
func AddFavorite(userID string, req models.AddFavoriteRequest) (*models.Favorite, error) {
	if req.FavoritedUserID == "" || req.FavoritedUserID == userID {
		return nil, errors.BadRequest("invalid user to favorite")
	}

	favorite := &models.Favorite{
		ID:              uuid.New().String(),
		UserID:          userID,
		FavoritedUserID: req.FavoritedUserID,
		CreatedAt:       time.Now(),
	}
	if err := repository.CreateFavorite(favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// ListFavorites returns the caller's bookmarks with their profiles attached
func ListFavorites(userID string) (*models.FavoritesResponse, error) {
	favorites, err := repository.ListFavorites(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.FavoriteEntry, 0, len(favorites))
	for _, favorite := range favorites {
		profile, err := profilerepo.GetProfileByUserID(favorite.FavoritedUserID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &models.FavoriteEntry{Favorite: favorite, Profile: profile})
	}
	return &models.FavoritesResponse{Favorites: entries, Total: len(entries)}, nil
}

// RemoveFavorite drops a bookmark
func RemoveFavorite(userID, favoritedUserID string) error {
	if favoritedUserID == "" {
		return errors.BadRequest("missing user id")
	}
	return repository.DeleteFavorite(userID, favoritedUserID)
}
