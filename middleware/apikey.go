package middleware

import (
	"net/http"

	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"
	"github.com/justfortestingnothibghere/DataForge-Cloud/utils"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth resolves identity purely from the caller's API key. It is
// deliberately independent of the token gate: keys never expire and are
// never matched against the token path. Used by the machine-facing v2
// read endpoint.
func APIKeyAuth(users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearerToken(c)
		if key == "" {
			utils.Error(c, http.StatusForbidden, "authorization required")
			c.Abort()
			return
		}

		user, err := users.GetByAPIKey(c.Request.Context(), nil, key)
		if err != nil {
			utils.Error(c, http.StatusForbidden, "invalid api key")
			c.Abort()
			return
		}

		c.Set("api_user", user)
		c.Next()
	}
}
