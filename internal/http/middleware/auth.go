package middleware

import (
	"net/http"
	"strings"

	"abcbus/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

// Auth resolves the requesting user from a bearer token. In demo mode
// a missing or invalid token falls back to the seeded demo identity
// instead of rejecting the request, matching the demo deployment.
func Auth(secret []byte, demoMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseBearer(c, secret)
		if !ok {
			if !demoMode {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "missing or invalid token",
					"code":  "unauthorized",
				})
				return
			}
			userID = models.DemoUserID
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret []byte) (int64, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// GetUserID extracts the authenticated user id from the context.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
