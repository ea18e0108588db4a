package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gel788/metch-dating-app/internal/advertisement/models"
	"github.com/Gel788/metch-dating-app/internal/advertisement/services"
	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/middleware"
)

// Create places a paid advertisement
func Create(c *gin.Context) {
	var req models.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid advertisement data", err.Error()))
		return
	}

	ad, err := services.CreateAd(middleware.CurrentUserID(c), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(201, ad)
}

// List returns running advertisements
func List(c *gin.Context) {
	var query models.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid query", err.Error()))
		return
	}

	resp, err := services.ListAds(middleware.CurrentUserID(c), query)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, resp)
}

// Deactivate turns off one of the caller's advertisements
func Deactivate(c *gin.Context) {
	if err := services.DeactivateAd(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true})
}

// Delete removes one of the caller's advertisements
func Delete(c *gin.Context) {
	if err := services.DeleteAd(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true})
}
