package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"claimgate/internal/transport/http/response"
)

// Limiter counts one attempt against a key and reports whether it is still
// within budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// PublicRateLimit throttles the anonymous upload surface per client address
// and, when a token is present in the URL, per token. A limiter error fails
// open: losing redis should degrade abuse protection, not uploads.
func PublicRateLimit(ipLimiter, tokenLimiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		allowed, err := ipLimiter.Allow(ctx, "ip:"+c.ClientIP())
		if err != nil {
			log.Printf("rate limiter unavailable: %v", err)
		} else if !allowed {
			response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "too many requests, try again later")
			c.Abort()
			return
		}

		token := c.Param("token")
		if token == "" {
			token = c.Query("token")
		}
		if token != "" {
			allowed, err := tokenLimiter.Allow(ctx, "token:"+token)
			if err != nil {
				log.Printf("rate limiter unavailable: %v", err)
			} else if !allowed {
				response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "too many requests, try again later")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
