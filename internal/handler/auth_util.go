package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"learning-community-api/internal/middleware"
	"learning-community-api/internal/response"
)

// extractUserID returns the authenticated user ID placed in the context
// by the auth middleware
func extractUserID(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid authentication context", "")
	}
	return userID, nil
}

// parsePathUUID parses a UUID path parameter
func parsePathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, response.NewAppError(response.ErrCodeValidation, "Invalid "+name, c.Param(name))
	}
	return id, nil
}
