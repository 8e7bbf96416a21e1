package middleware

import (
	"net/http"
	"strings"

	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"
	"github.com/justfortestingnothibghere/DataForge-Cloud/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is the access gate for every protected route. It takes
// the token from the Authorization header first, falling back to the
// named session cookie, and rejects the request unless the token
// verifies and its subject still maps to a user record.
func AuthMiddleware(tokens *utils.TokenManager, users repositories.UserRepository, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			utils.Error(c, http.StatusUnauthorized, "not authenticated")
			c.Abort()
			return
		}

		username, err := tokens.Parse(token)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), nil, username)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "user not found")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("is_admin", user.IsAdmin)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			utils.Error(c, http.StatusForbidden, "admin only")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
