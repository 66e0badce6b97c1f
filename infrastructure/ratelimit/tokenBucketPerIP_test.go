package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/frames", func(ctx *gin.Context) {
		ctx.Set("SessionID", ctx.GetHeader("X-Session-Id"))
		ctx.Next()
	}, handler, func(ctx *gin.Context) {
		ctx.Status(http.StatusAccepted)
	})
	return engine
}

func hit(engine *gin.Engine, sessionID string) int {
	req := httptest.NewRequest(http.MethodGet, "/frames", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder.Code
}

func TestTokenBucketPerKeySeparatesClientsBehindOneIP(t *testing.T) {
	engine := limitedEngine(TokenBucketPerKey(1, func(ctx *gin.Context) string {
		return ctx.GetString("SessionID")
	}))

	assert.Equal(t, http.StatusAccepted, hit(engine, "kiosk-a"))
	assert.Equal(t, http.StatusTooManyRequests, hit(engine, "kiosk-a"))
	assert.Equal(t, http.StatusAccepted, hit(engine, "kiosk-b"))
}

func TestTokenBucketPerKeyFallsBackToIP(t *testing.T) {
	engine := limitedEngine(TokenBucketPerKey(1, func(ctx *gin.Context) string { return "" }))

	assert.Equal(t, http.StatusAccepted, hit(engine, ""))
	assert.Equal(t, http.StatusTooManyRequests, hit(engine, ""))
}

func TestTokenBucketPerIP(t *testing.T) {
	engine := limitedEngine(TokenBucketPerIP(1))

	assert.Equal(t, http.StatusAccepted, hit(engine, "kiosk-a"))
	assert.Equal(t, http.StatusTooManyRequests, hit(engine, "kiosk-b"))
}
