package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itsalphin/ai-study-companion/internal/storage"
)

// Middleware validates the Bearer token and loads the owning user into the
// request context under "user".
func Middleware(tokens *TokenService, users storage.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if claims, err := tokens.Validate(raw); err == nil {
				if user, err := users.GetUserByID(c.Request.Context(), claims.UserID); err == nil {
					c.Set("user", user)
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
