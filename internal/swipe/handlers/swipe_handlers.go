package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/middleware"
	"github.com/Gel788/metch-dating-app/internal/swipe/models"
	"github.com/Gel788/metch-dating-app/internal/swipe/services"
)

// Next returns the next candidate profile for the caller
func Next(c *gin.Context) {
	resp, err := services.NextProfile(middleware.CurrentUserID(c))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, resp)
}

// Swipe records a swipe decision
func Swipe(c *gin.Context) {
	var req models.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid swipe data", err.Error()))
		return
	}

	resp, err := services.RecordSwipe(middleware.CurrentUserID(c), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, resp)
}

// Likes lists likes the caller has received
func Likes(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	resp, err := services.LikesFor(middleware.CurrentUserID(c), limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, resp)
}
