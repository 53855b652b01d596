package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/algoreed/crs/internal/auth"
)

// Context keys set by JWTAuthMiddleware
const (
	SubjectKey = "subject"
	RoleKey    = "role"
)

// JWTAuthMiddleware rejects requests without a valid "Authorization: Bearer <token>" header
func JWTAuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		subject, role, err := tokens.ParseJWT(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(SubjectKey, subject)
		c.Set(RoleKey, role)
		c.Next()
	}
}
