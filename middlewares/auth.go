package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"pintdiary/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer JWT and sets the caller's uid and
// email in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization token"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Authorization token format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseJWTToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": fmt.Sprintf("Token validation error: %v", err)})
			c.Abort()
			return
		}

		c.Set("uid", claims.UID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
