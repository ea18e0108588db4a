package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/middleware"
	"github.com/Gel788/metch-dating-app/internal/message/models"
	"github.com/Gel788/metch-dating-app/internal/message/services"
)

// Handler exposes the message endpoints
type Handler struct {
	service *services.Service
}

// NewHandler creates the message handler
func NewHandler(service *services.Service) *Handler {
	return &Handler{service: service}
}

// Send persists a message and fans it out to the receiver's live connections
func (h *Handler) Send(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid message data", err.Error()))
		return
	}

	message, err := h.service.Send(middleware.CurrentUserID(c), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(201, message)
}

// List returns the conversation with ?withUserId=, or the dialogue summary
// when the parameter is absent
func (h *Handler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if withUserID := c.Query("withUserId"); withUserID != "" {
		conversation, err := h.service.Conversation(userID, withUserID)
		if err != nil {
			middleware.JSONErrorResponse(c, err)
			return
		}
		c.JSON(200, conversation)
		return
	}

	dialogues, err := h.service.Dialogues(userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, dialogues)
}
