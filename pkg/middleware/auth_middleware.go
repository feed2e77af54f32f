package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fundhub/pkg/utils"
)

// AuthMiddleware verifies the bearer token issued by the identity provider
// and exposes the external subject id and email to downstream handlers.
func AuthMiddleware() gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)

		if err != nil || claims == nil || claims.Subject == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("external_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Next()
	}
}
