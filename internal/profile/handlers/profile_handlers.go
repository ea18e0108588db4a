package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/middleware"
	"github.com/Gel788/metch-dating-app/internal/profile/models"
	"github.com/Gel788/metch-dating-app/internal/profile/services"
)

// GetMe returns the caller's own profile
func GetMe(c *gin.Context) {
	profile, err := services.GetMyProfile(middleware.CurrentUserID(c))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, profile)
}

// UpdateMe applies a partial update to the caller's profile
func UpdateMe(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid profile data", err.Error()))
		return
	}

	profile, err := services.UpdateMyProfile(middleware.CurrentUserID(c), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, profile)
}

// Browse lists profiles with optional gender/city filters
func Browse(c *gin.Context) {
	var query models.BrowseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid query", err.Error()))
		return
	}

	page, err := services.Browse(middleware.CurrentUserID(c), query)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, page)
}

// GetProfile returns one profile by user id and records the view
func GetProfile(c *gin.Context) {
	profile, err := services.ViewProfile(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, profile)
}

// AddPhoto attaches a photo record to the caller's profile
func AddPhoto(c *gin.Context) {
	var req models.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid photo data", err.Error()))
		return
	}

	photo, err := services.AddPhoto(middleware.CurrentUserID(c), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(201, photo)
}

// Block hides another user from the caller in both directions
func Block(c *gin.Context) {
	var req models.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid block data", err.Error()))
		return
	}

	if err := services.BlockUser(middleware.CurrentUserID(c), req.BlockedID); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true})
}

// GetProfileViews returns who viewed the caller's profile
func GetProfileViews(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	views, err := services.ProfileViews(middleware.CurrentUserID(c), limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, views)
}
