package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/middleware"
	"github.com/Gel788/metch-dating-app/internal/premium/models"
	"github.com/Gel788/metch-dating-app/internal/premium/services"
)

// Activate purchases or extends the caller's subscription
func Activate(c *gin.Context) {
	var req models.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid plan data", err.Error()))
		return
	}

	resp, err := services.Activate(middleware.CurrentUserID(c), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, resp)
}

// Status returns the caller's subscription and the plan catalogue
func Status(c *gin.Context) {
	resp, err := services.Status(middleware.CurrentUserID(c))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, resp)
}
