package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/middleware"
	"github.com/Gel788/metch-dating-app/internal/favorite/models"
	"github.com/Gel788/metch-dating-app/internal/favorite/services"
)

// List returns the caller's favorites with profiles attached
func List(c *gin.Context) {
	favorites, err := services.ListFavorites(middleware.CurrentUserID(c))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, favorites)
}

// Add bookmarks another user
func Add(c *gin.Context) {
	var req models.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid favorite data", err.Error()))
		return
	}

	favorite, err := services.AddFavorite(middleware.CurrentUserID(c), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(201, gin.H{"success": true, "favorite": favorite})
}

// Remove drops a bookmark by the bookmarked user's id
func Remove(c *gin.Context) {
	if err := services.RemoveFavorite(middleware.CurrentUserID(c), c.Param("userId")); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true})
}
