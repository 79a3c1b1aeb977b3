package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	mw "github.com/5w1tchy/catalog-api/internal/api/middlewares"
)

func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRateLimiters_FailOpen(t *testing.T) {
	rdb := deadRedis()
	defer rdb.Close()

	limiters := map[string]func(http.Handler) http.Handler{
		"token bucket":   mw.NewRedisTokenBucket(rdb, 1, 1, mw.PerIPKey("rl:test")).Middleware,
		"sliding window": mw.NewRedisSlidingWindow(rdb, 1, time.Hour, mw.PerIPKey("rl:test")).Middleware,
	}
	for name, limit := range limiters {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			limit(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("X-RateLimit-Policy"))
		})
	}
}

func TestPerIPKey(t *testing.T) {
	key := mw.PerIPKey("rl")

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.RemoteAddr = "10.0.0.7:5123"
	assert.Equal(t, "rl:10.0.0.7", key(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "rl:203.0.113.9", key(req))
}
