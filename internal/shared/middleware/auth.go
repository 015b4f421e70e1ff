package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"collections-backend/internal/shared/response"
	"collections-backend/pkg/jwt"
)

// AuthMiddleware validates the editor JWT on mutation routes.
// The editor ID from the claims is injected into the gin context.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set("editor_id", claims.EditorID)
		c.Set("editor_name", claims.Name)

		c.Next()
	}
}
