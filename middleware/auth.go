package middleware

import (
	"net/http"

	"Roomio/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UserIDKey is where the authenticated user id lives, both in the gin
// context and in the cookie session.
const UserIDKey = "userID"

// AuthRequired accepts a bearer JWT or, when no Authorization header is sent,
// the user id stored in the cookie session by login. A bearer token that
// fails validation is rejected without looking at the session.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			token, err := utils.BearerToken(header)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
				return
			}
			claims, err := utils.ValidateJWT(token, jwtSecret)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
			c.Set(UserIDKey, claims.UserID)
			c.Next()
			return
		}

		session := sessions.Default(c)
		userID, ok := session.Get(UserIDKey).(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the id set by AuthRequired.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
