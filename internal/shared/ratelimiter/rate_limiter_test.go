package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestRateLimiter_Allow は上限までは許可し、超過分を拒否することを検証します。
func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit should be rejected")
	}
}

// TestRateLimiter_KeysAreIndependent はキーごとに独立してカウントされることを検証します。
func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("10.0.0.1") {
		t.Error("first key should be allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second key must not share the first key's window")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("first key should be exhausted")
	}
}

// TestRateLimiter_WindowReset はウィンドウ経過後にカウントがリセットされることを検証します。
func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request should be rejected")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("10.0.0.1") {
		t.Error("request after window reset should be allowed")
	}
}

// TestRateLimiter_ConcurrentAccess は並行アクセス時に総許可数が上限を超えないことを検証します。
func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	const limit = 50
	rl := NewRateLimiter(limit, time.Minute)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("10.0.0.1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Errorf("expected exactly %d allowed requests, got %d", limit, allowed)
	}
}

// TestRateLimiter_Middleware は上限超過時に429が返されることを検証します。
func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(2, time.Minute)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests should pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request should get 429, got %d", statuses[2])
	}
}
