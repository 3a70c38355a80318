package middleware

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

// TestRateLimiterConcurrentAccess verifies the rate limiter is safe under concurrent access.
// Run with: go test -race -count=1 ./internal/middleware/ -run TestRateLimiterConcurrentAccess
func TestRateLimiterConcurrentAccess(t *testing.T) {
	limiter := NewRateLimiter(100, "test-concurrent")
	defer limiter.Stop()

	var wg sync.WaitGroup
	// 50 goroutines each making 20 requests with varying IPs
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(goroutineID int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				// Mix of same IP and different IPs to stress both paths
				ip := "192.168.1.1"
				if j%3 == 0 {
					ip = "10.0.0." + strconv.Itoa(goroutineID%10)
				}
				limiter.isAllowed(ip)
			}
		}(i)
	}
	wg.Wait()
}

// TestRateLimiterConcurrentWithCleanup verifies no race between request handling and cleanup.
func TestRateLimiterConcurrentWithCleanup(t *testing.T) {
	limiter := NewRateLimiter(5, "test-cleanup-race")
	defer limiter.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				limiter.isAllowed("10.0.0." + strconv.Itoa(id%10))
				if j%10 == 0 {
					// Far enough ahead that every client looks idle
					limiter.cleanup(time.Now().Add(2 * idleTimeout))
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	limiter := NewRateLimiter(3, "test-burst")
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.isAllowed("1.2.3.4"); !ok {
			t.Fatalf("request %d rejected within burst", i+1)
		}
	}

	ok, wait := limiter.isAllowed("1.2.3.4")
	if ok {
		t.Fatal("request beyond burst was allowed")
	}
	if wait <= 0 || wait > 20*time.Second {
		t.Errorf("retry wait = %v, want within one refill interval", wait)
	}

	if ok, _ := limiter.isAllowed("5.6.7.8"); !ok {
		t.Error("other client should have its own bucket")
	}
}

func TestRateLimiter_CleanupRemovesIdleClients(t *testing.T) {
	limiter := NewRateLimiter(10, "test-cleanup")
	defer limiter.Stop()

	limiter.isAllowed("1.2.3.4")
	if got := limiter.cleanup(time.Now()); got != 0 {
		t.Errorf("cleanup() removed %d active clients", got)
	}
	if got := limiter.cleanup(time.Now().Add(idleTimeout + time.Second)); got != 1 {
		t.Errorf("cleanup() = %d, want 1", got)
	}
}
