package ratelimit

import (
	"encoding/json"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

func newLimiter(max float64) *limiter.Limiter {
	message := map[string]any{
		"message": "You are going too fast! You have been ratelimited.",
	}
	jsonMessage, _ := json.Marshal(message)

	tlbthLimiter := tollbooth.NewLimiter(max, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Minute * 1,
	})
	tlbthLimiter.SetIPLookups([]string{"X-Forwarded-For", "X-Real-IP", "RemoteAddr"})
	tlbthLimiter.SetMessageContentType("application/json")
	tlbthLimiter.SetMessage(string(jsonMessage))
	return tlbthLimiter
}

// TokenBucketPerIP allows max requests per second from each client IP.
func TokenBucketPerIP(max float64) gin.HandlerFunc {
	return tollbooth_gin.LimitHandler(newLimiter(max))
}

// TokenBucketPerKey allows max requests per second for each key, so clients
// sharing one IP (kiosks behind a NAT) keep separate budgets. An empty key
// falls back to the client IP.
func TokenBucketPerKey(max float64, key func(ctx *gin.Context) string) gin.HandlerFunc {
	tlbthLimiter := newLimiter(max)
	return func(ctx *gin.Context) {
		bucket := key(ctx)
		if bucket == "" {
			bucket = ctx.ClientIP()
		}
		httpError := tollbooth.LimitByKeys(tlbthLimiter, []string{ctx.FullPath(), bucket})
		if httpError != nil {
			ctx.Data(httpError.StatusCode, tlbthLimiter.GetMessageContentType(), []byte(httpError.Message))
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
