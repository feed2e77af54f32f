package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/services"
	"fundhub/pkg/utils"
)

// currentUser resolves the authenticated principal (set by the auth
// middleware) to the local user record.
func currentUser(c *gin.Context, users services.UserServiceInterface) (*dbm.User, error) {
	externalID := c.GetString("external_id")
	if externalID == "" {
		return nil, utils.ErrUnauthorized
	}
	return users.SyncUser(c.Request.Context(), externalID, c.GetString("email"))
}

// optionalUser is for routes that accept both guests and signed-in callers.
func optionalUser(c *gin.Context, users services.UserServiceInterface) *dbm.User {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}
	claims, err := utils.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || claims == nil || claims.Subject == "" {
		return nil
	}
	user, err := users.SyncUser(c.Request.Context(), claims.Subject, claims.Email)
	if err != nil {
		return nil
	}
	return user
}
