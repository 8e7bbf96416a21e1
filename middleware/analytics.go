package middleware

import (
	"github.com/justfortestingnothibghere/DataForge-Cloud/logger"
	"github.com/justfortestingnothibghere/DataForge-Cloud/models"
	"github.com/justfortestingnothibghere/DataForge-Cloud/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Analytics records an api_call event after the handler has run. Like
// every analytics write it is best-effort: a failed insert is logged at
// warn and the response goes out unchanged.
func Analytics(events repositories.AnalyticsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		event, err := models.NewAnalyticsEvent(callerID(c), models.EventAPICall, models.APICallDetails{
			Path:   c.Request.URL.Path,
			Method: c.Request.Method,
		})
		if err != nil {
			logger.L().Warn("analytics event encode failed", zap.Error(err))
			return
		}
		if err := events.Create(c.Request.Context(), nil, &event); err != nil {
			logger.L().Warn("analytics event write failed", zap.Error(err))
		}
	}
}

// callerID resolves the requester from whichever gate ran: the token
// gate stores user_id, the api-key gate stores the whole user record.
// Unauthenticated traffic records a nil user.
func callerID(c *gin.Context) *uint {
	if id := c.GetUint("user_id"); id != 0 {
		return &id
	}
	if v, ok := c.Get("api_user"); ok {
		if user, ok := v.(models.User); ok {
			return &user.ID
		}
	}
	return nil
}
