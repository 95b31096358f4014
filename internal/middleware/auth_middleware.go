package middleware

import (
	"net/http"
	"strings"

	"github.com/Baaaki/ride-server/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and injects the session identity
// (user id and role) into the request context. Handlers act on behalf of
// this identity; client-supplied user ids are never trusted for authorization.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID.String())
		c.Set("user_email", claims.Email)
		c.Set("user_role", string(claims.Role))
		c.Set("claims", claims)

		c.Next()
	}
}

// DriverMiddleware restricts a route to driver accounts. It must run after
// AuthMiddleware.
func DriverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			c.Abort()
			return
		}

		if role != "driver" {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Driver access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
