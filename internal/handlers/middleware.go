package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-directory/internal/database"
	"clinic-directory/internal/models"
	"clinic-directory/internal/ratelimit"
)

// RateLimit returns middleware that consumes one fixed-window slot per
// request, keyed by client IP and the given action. Denied requests get
// a 429 with a Retry-After header; limiter failures fail open.
func RateLimit(action string, limit, windowSec int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := ratelimit.New(database.GetDB())
		decision, err := limiter.Consume(c.Request.Context(), c.ClientIP(), action, limit, windowSec, time.Now())
		if err != nil {
			c.Next()
			return
		}

		if !decision.Allowed {
			retryAfterSec := int(time.Until(decision.ResetAt).Round(time.Second) / time.Second)
			if retryAfterSec < 0 {
				retryAfterSec = 0
			}
			c.Header("Retry-After", strconv.Itoa(retryAfterSec))
			RespondWithError(c, http.StatusTooManyRequests, models.ErrorCodeRateLimited, "Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
