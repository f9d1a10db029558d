package middleware

import (
	"net/http"
	"strings"

	"yieldx/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		farmerID, phone, err := auth.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			c.Abort()
			return
		}

		// Attach farmer info to request context
		c.Set("farmerID", farmerID)
		c.Set("farmerPhone", phone)
		c.Next()
	}
}

// OptionalAuth attaches the farmer when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			farmerID, phone, err := auth.ValidateToken(token)
			if err != nil {
				zap.L().Debug("ignoring invalid token", zap.Error(err))
			} else {
				c.Set("farmerID", farmerID)
				c.Set("farmerPhone", phone)
			}
		}
		c.Next()
	}
}
