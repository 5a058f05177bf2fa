// file: middleware/ratelimiter.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	"techevents-web/logger"
)

// FormRateLimiter limits form submissions (POST) per client IP. format uses
// the limiter notation, e.g. "30-M". Other methods pass through untouched.
func FormRateLimiter(format string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(memory.NewStore(), rate)
	limit := ginlimiter.NewMiddleware(instance,
		ginlimiter.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn.Printf("FormRateLimiter: %s exceeded %s on %s", c.ClientIP(), format, c.Request.URL.Path)
			c.String(http.StatusTooManyRequests, "Too many submissions, please wait a moment and try again")
		}),
	)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		limit(c)
	}, nil
}
