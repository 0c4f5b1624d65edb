package middleware

import (
	"net/http"
	"strings"

	"educonnect/internal/config"
	"educonnect/internal/db"
	"educonnect/internal/models"
	"educonnect/internal/utils"

	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "user"

// LoadUser resolves the Bearer token, if any, and puts the user on the
// context. It never aborts: list endpoints work anonymously and only use
// the user to derive saved/liked flags.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(tokenString, config.JWTSecret)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if result := db.DB.First(&user, claims.UserID); result.Error == nil {
			c.Set(CurrentUserKey, &user)
		}
		c.Next()
	}
}

// AuthRequired rejects requests that did not resolve to a user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CurrentUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "A valid Bearer token is required for this endpoint.",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(CurrentUserKey); exists {
		return user.(*models.User)
	}
	return nil
}
