package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(limit gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", limit, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func hit(r http.Handler) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	return w
}

func TestRedisRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	window := 2 * time.Second
	r := limitedRouter(RedisRateLimit(client, 2, window))

	for i := 0; i < 2; i++ {
		w := hit(r)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := hit(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// the window key expires
	mr.FastForward(window + time.Second)
	assert.Equal(t, http.StatusOK, hit(r).Code)
}

func TestRedisRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	r := limitedRouter(RedisRateLimit(client, 1, time.Minute))
	for i := 0; i < 3; i++ {
		w := hit(r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "redis-error", w.Header().Get("X-RateLimit-Error"))
	}
}

func TestSimpleRateLimit(t *testing.T) {
	r := limitedRouter(RateLimit(nil, 3, time.Minute))

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, hit(r).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)

	// a fresh middleware has its own counters
	assert.Equal(t, http.StatusOK, hit(limitedRouter(SimpleRateLimit(1, time.Minute))).Code)
}

func TestRedisRateLimitRepairsMissingTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// counter left behind by an INCR whose EXPIRE never ran
	key := "rl:60:192.0.2.1"
	require.NoError(t, mr.Set(key, "5"))
	require.Equal(t, time.Duration(0), mr.TTL(key))

	r := limitedRouter(RedisRateLimit(client, 2, time.Minute))
	assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)
	assert.Greater(t, mr.TTL(key), time.Duration(0))

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit(r).Code)
}
