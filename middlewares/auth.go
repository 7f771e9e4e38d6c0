package middlewares

import (
	"net/http"
	"strings"

	"labchat/config"
	"labchat/services"

	"github.com/gin-gonic/gin"
)

// TokenAuthMiddleware 校验 Bearer Token and stores the resolved *models.User
// under the "user" context key.
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		username, err := services.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired token"})
			return
		}

		user, err := services.GetUserByName(config.DB, username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
