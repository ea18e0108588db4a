package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gel788/metch-dating-app/internal/auth/models"
	"github.com/Gel788/metch-dating-app/internal/auth/services"
	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/middleware"
)

// Handler exposes the auth endpoints
type Handler struct {
	service *services.Service
}

// NewHandler creates the auth handler
func NewHandler(service *services.Service) *Handler {
	return &Handler{service: service}
}

// Signup creates an account and returns a token
func (h *Handler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid signup data", err.Error()))
		return
	}

	resp, err := h.service.Signup(req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(201, resp)
}

// Signin exchanges credentials for a token
func (h *Handler) Signin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid signin data", err.Error()))
		return
	}

	resp, err := h.service.Signin(req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, resp)
}
