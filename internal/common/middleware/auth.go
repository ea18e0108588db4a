package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Gel788/metch-dating-app/internal/auth"
	"github.com/Gel788/metch-dating-app/internal/common/errors"
)

// ContextUserID is the gin context key carrying the authenticated user id
const ContextUserID = "user_id"

// AuthRequired validates the bearer token and stores the user id in the context
func AuthRequired(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			appErr := errors.Unauthorized("missing or invalid authentication")
			c.AbortWithStatusJSON(appErr.Status, appErr)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			appErr := errors.Unauthorized("invalid or expired token")
			c.AbortWithStatusJSON(appErr.Status, appErr)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by AuthRequired
func CurrentUserID(c *gin.Context) string {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(string)
	return userID
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// WebSocket clients pass the token as a query parameter
	return c.Query("token")
}
