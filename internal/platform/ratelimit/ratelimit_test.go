package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, rdb *redis.Client, limit int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := NewStore(rdb)
	require.NoError(t, err)

	r := gin.New()
	r.Use(Middleware(store, limit, 15*time.Minute))
	r.GET("/api/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func hit(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware_MemoryStore(t *testing.T) {
	r := newEngine(t, nil, 2)

	for i := 0; i < 2; i++ {
		w := hit(r, "10.0.0.1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := hit(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, MsgTooManyRequests, body["message"])

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.2").Code)
}

func TestMiddleware_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := newEngine(t, rdb, 1)
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.3").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.3").Code)
}

func TestMiddleware_StoreOutageFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	store, err := NewStore(rdb)
	require.NoError(t, err)

	calls := 0
	r := gin.New()
	r.Use(Middleware(store, 1, 15*time.Minute))
	r.GET("/api/ping", func(c *gin.Context) {
		calls++
		c.String(http.StatusOK, "pong")
	})

	mr.Close()

	for i := 1; i <= 3; i++ {
		w := hit(r, "10.0.0.4")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, i, calls, "handler runs exactly once per request")
	}
}
