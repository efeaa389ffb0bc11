package middleware

import (
	"net/http"
	"strings"

	"courseledger/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware резолвит Bearer-токен в userId и кладет его в контекст.
// Дальше по стеку ходит уже разрезолвленная личность, не credential.
func AuthMiddleware(tm *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolve(c, tm)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or missing access token",
			})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}

// OptionalAuth — для публичных страниц, которые умеют дорисовывать
// персональные данные (пометки "просмотрено" на детали курса).
func OptionalAuth(tm *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolve(c, tm); ok {
			c.Set("userId", userID)
		}
		c.Next()
	}
}

func resolve(c *gin.Context, tm *security.TokenManager) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	userID, err := tm.ValidateAccessToken(parts[1])
	if err != nil {
		return "", false
	}
	return userID, true
}
