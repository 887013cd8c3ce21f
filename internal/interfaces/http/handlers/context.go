package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/shared/constants"
	"github.com/fitmo-inc/fitmo/internal/shared/errors"
)

// currentUserID reads the authenticated trainer's ID set by the auth
// middleware.
func currentUserID(c *gin.Context) (uint, error) {
	raw, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, errors.NewUnauthorizedError("authentication required")
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		return 0, errors.NewUnauthorizedError("authentication required")
	}
	return userID, nil
}

func currentUserEmail(c *gin.Context) (string, error) {
	raw, exists := c.Get(constants.ContextKeyUserEmail)
	if !exists {
		return "", errors.NewUnauthorizedError("authentication required")
	}
	email, ok := raw.(string)
	if !ok || email == "" {
		return "", errors.NewUnauthorizedError("authentication required")
	}
	return email, nil
}
