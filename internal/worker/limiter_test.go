package worker

import (
	"context"
	"testing"
	"time"
)

// available reports whether rawURL can be contacted without a noticeable wait
func available(l *Limiter, rawURL string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	return l.Wait(ctx, rawURL) == nil
}

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different domain should also work
	if err := limiter.Wait(ctx, "http://google.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	url := "http://example.com"

	if err := limiter.Wait(context.Background(), url); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, url); err == nil {
		t.Error("expected error when the context ends before a token is available")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !available(limiter, "http://example.com") {
			t.Fatalf("disabled limiter blocked request %d", i)
		}
	}

	var nilLimiter *Limiter
	if err := nilLimiter.Wait(context.Background(), "http://example.com"); err != nil {
		t.Errorf("nil limiter should not block: %v", err)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	// 1 rps, burst 1
	limiter := NewLimiter(1, 1)
	url := "http://example.com"

	if !available(limiter, url) {
		t.Fatal("first request should pass")
	}

	// Burst of 1 is consumed
	if available(limiter, url) {
		t.Errorf("expected second request to wait")
	}

	// Host matching ignores case
	if available(limiter, "http://EXAMPLE.com/other") {
		t.Errorf("expected upper-case host to share the bucket")
	}

	if !available(limiter, "http://other.com") {
		t.Errorf("expected other domain to pass")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	domain := "slow.com"

	limiter.SetDomainRate(domain, 0.1, 1)

	if !available(limiter, "http://"+domain) {
		t.Errorf("first request should pass")
	}

	if available(limiter, "http://"+domain) {
		t.Errorf("second request should wait")
	}

	if !available(limiter, "http://fast.com") {
		t.Errorf("other domain should pass")
	}
}

func TestLimiter_SetDomainRateOnDisabledLimiter(t *testing.T) {
	limiter := NewLimiter(0, 1)
	limiter.SetDomainRate("Slow.com", 0.1, 1)

	if !available(limiter, "http://slow.com") {
		t.Fatal("first request should pass")
	}
	if available(limiter, "http://slow.com/page") {
		t.Error("override should pace its host")
	}

	// Other hosts keep the disabled default
	for i := 0; i < 20; i++ {
		if !available(limiter, "http://fast.com") {
			t.Fatalf("default host blocked on request %d", i)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	domain, err := extractDomain("http://Example.COM/foo")
	if err != nil {
		t.Fatalf("extractDomain failed: %v", err)
	}
	if domain != "example.com" {
		t.Errorf("expected example.com, got %s", domain)
	}

	_, err = extractDomain("::invalid")
	if err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
