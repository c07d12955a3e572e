package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManualLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Close)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_SlidingWindow(t *testing.T) {
	rl, now := newManualLimiter(t, 3, time.Minute)

	assert.True(t, rl.Allow("a"))
	*now = now.Add(20 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.Equal(t, 0, rl.Remaining("a"))

	// other clients are independent
	assert.True(t, rl.Allow("b"))
	assert.Equal(t, 2, rl.Remaining("b"))

	// first hit leaves the window, one slot frees up
	*now = now.Add(41 * time.Second)
	assert.Equal(t, 1, rl.Remaining("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, now := newManualLimiter(t, 2, time.Minute)
	rl.Allow("a")

	*now = now.Add(2 * time.Minute)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.clients)
}

func TestRateLimiter_ConcurrentAllow(t *testing.T) {
	rl, _ := newManualLimiter(t, 50, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestRateLimiter_CloseIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Close()
	rl.Close()
}

func TestRateLimit_Middleware(t *testing.T) {
	rl, _ := newManualLimiter(t, 2, time.Minute)

	router := gin.New()
	router.Use(RequestID(), RateLimit(rl))
	router.POST("/login", okHandler)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := do()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, do().Code)

	blocked := do()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	assert.Equal(t, "ERR_RATE_LIMITED", errorCode(t, blocked))
}
