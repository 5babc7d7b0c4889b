// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/pkg/auth"
)

// AuthMiddleware validates the cashier token on every register request.
// The terminal ID in the token is what scopes sessions and held sales.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("cashier_name", claims.CashierName)
		c.Set("terminal_id", claims.TerminalID)

		c.Next()
	}
}

// GetCashierNameFromContext extracts the cashier name from gin context
func GetCashierNameFromContext(c *gin.Context) (string, bool) {
	name, exists := c.Get("cashier_name")
	if !exists {
		return "", false
	}
	return name.(string), true
}

// GetTerminalIDFromContext extracts the terminal ID from gin context
func GetTerminalIDFromContext(c *gin.Context) (string, bool) {
	id, exists := c.Get("terminal_id")
	if !exists {
		return "", false
	}
	return id.(string), true
}
