package folio

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 2, time.Minute)
	defer limiter.Close()
	ip := "203.0.113.10"

	for i := 1; i <= 2; i++ {
		if ok, _ := limiter.Allow(ip); !ok {
			t.Fatalf("expected request %d to be allowed", i)
		}
	}
	if ok, _ := limiter.Allow(ip); ok {
		t.Fatalf("expected third request to be blocked")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(50*time.Millisecond), 1, time.Minute)
	defer limiter.Close()
	ip := "203.0.113.20"

	if ok, _ := limiter.Allow(ip); !ok {
		t.Fatalf("expected first request to be allowed")
	}
	if ok, _ := limiter.Allow(ip); ok {
		t.Fatalf("expected second request to be blocked")
	}

	time.Sleep(120 * time.Millisecond)
	if ok, _ := limiter.Allow(ip); !ok {
		t.Fatalf("expected request after refill to be allowed")
	}
}

func TestRateLimiterIsPerIP(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 1, time.Minute)
	defer limiter.Close()

	if ok, _ := limiter.Allow("203.0.113.30"); !ok {
		t.Fatalf("expected first ip to be allowed")
	}
	if ok, _ := limiter.Allow("203.0.113.31"); !ok {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if ok, _ := limiter.Allow("203.0.113.30"); ok {
		t.Fatalf("expected first ip to be blocked after burst")
	}
}

func TestRateLimiterSweepDropsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 1, time.Minute)
	defer limiter.Close()

	limiter.Allow("203.0.113.40")
	limiter.Allow("203.0.113.41")
	if got := limiter.len(); got != 2 {
		t.Fatalf("visitors = %d, want 2", got)
	}

	limiter.sweep(time.Now().Add(time.Second))
	if got := limiter.len(); got != 0 {
		t.Fatalf("visitors after sweep = %d, want 0", got)
	}
	if ok, _ := limiter.Allow("203.0.113.40"); !ok {
		t.Fatalf("expected swept visitor to start with a fresh bucket")
	}
}

func TestRateLimiterCloseIsIdempotent(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Second), 1, time.Minute)
	limiter.Close()
	limiter.Close()
}
