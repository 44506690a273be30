package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httptest requests arrive from 192.0.2.1, which newLimitedEngine treats as the proxy.
func newLimitedEngine(t *testing.T, max int, allow AllowFunc) (*gin.Engine, *miniredis.Miniredis, *test.Hook) {
	t.Helper()
	proxies, err := ParseTrustedProxies([]string{"192.0.2.1"})
	require.NoError(t, err)
	return newLimitedEngineWithProxies(t, max, allow, proxies)
}

func newLimitedEngineWithProxies(t *testing.T, max int, allow AllowFunc, proxies []netip.Prefix) (*gin.Engine, *miniredis.Miniredis, *test.Hook) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	logger, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(RealIP(proxies), RateLimit(rdb, max, time.Minute, KeyByIP(), allow, logger))
	r.GET("/api/users/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, mr, hook
}

func hit(r *gin.Engine, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	r, _, _ := newLimitedEngine(t, 2, nil)

	w := hit(r, "/api/users/1", "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, hit(r, "/api/users/2", "203.0.113.7").Code)

	w = hit(r, "/api/users/3", "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// other clients behind the proxy keep their own budget
	assert.Equal(t, http.StatusOK, hit(r, "/api/users/1", "198.51.100.1").Code)
}

func TestRateLimit_WindowExpires(t *testing.T) {
	r, mr, _ := newLimitedEngine(t, 1, nil)

	require.Equal(t, http.StatusOK, hit(r, "/api/users/1", "203.0.113.7").Code)
	require.Equal(t, http.StatusTooManyRequests, hit(r, "/api/users/1", "203.0.113.7").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit(r, "/api/users/1", "203.0.113.7").Code)
}

func TestRateLimit_Bypass(t *testing.T) {
	r, _, _ := newLimitedEngine(t, 1, AnyOf(nil, AllowPaths("/api/health"), AllowPrivateIP()))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/api/health", "203.0.113.7").Code)
		assert.Equal(t, http.StatusOK, hit(r, "/api/users/1", "10.1.2.3").Code)
	}
	assert.Equal(t, http.StatusOK, hit(r, "/api/users/1", "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "/api/users/1", "203.0.113.7").Code)
}

func TestRateLimit_UntrustedPeerCannotRotateForwardedFor(t *testing.T) {
	r, _, _ := newLimitedEngineWithProxies(t, 1, AllowPrivateIP(), nil)

	assert.Equal(t, http.StatusOK, hit(r, "/api/users/1", "203.0.113.1").Code)
	for _, spoofed := range []string{"203.0.113.2", "203.0.113.3", "10.0.0.1", "127.0.0.1"} {
		assert.Equal(t, http.StatusTooManyRequests, hit(r, "/api/users/1", spoofed).Code, spoofed)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r, mr, hook := newLimitedEngine(t, 1, nil)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/api/users/1", "203.0.113.7").Code)
	}
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "rl:ip:203.0.113.7", entry.Data["key"])
}

func TestRateLimit_NilClientIsNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(nil, 1, time.Minute, KeyByIP(), nil, nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, hit(r, "/x", "203.0.113.7").Code)
	}
}
