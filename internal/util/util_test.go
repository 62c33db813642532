package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func TestNormalizeUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (compatible; Brandprint/0.1; +https://example.com)", "Brandprint"},
		{"Brandprint/0.1", "Brandprint"},
		{"curl/8.0 extra", "curl"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeUserAgent(tt.ua); got != tt.want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}

func TestRobotsChecker_CanFetch(t *testing.T) {
	var robotsHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			_, _ = fmt.Fprint(w, "User-agent: Brandprint\nDisallow: /private\n")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("Mozilla/5.0 (compatible; Brandprint/0.1)", 5*time.Second)
	ctx := context.Background()

	allowed, err := checker.CanFetch(ctx, server.URL+"/")
	if err != nil || !allowed {
		t.Errorf("expected / to be allowed, got %v %v", allowed, err)
	}

	allowed, err = checker.CanFetch(ctx, server.URL+"/private/page")
	if err != nil || allowed {
		t.Errorf("expected /private/page to be disallowed, got %v %v", allowed, err)
	}

	if robotsHits.Load() != 1 {
		t.Errorf("expected robots.txt to be fetched once, got %d", robotsHits.Load())
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	checker := NewRobotsChecker("Brandprint/0.1", 5*time.Second)
	allowed, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil || !allowed {
		t.Errorf("expected fetch to be allowed without robots.txt, got %v %v", allowed, err)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:3128", "", "internal.example.com, .corp")

	for _, tt := range []struct {
		target string
		direct bool
	}{
		{"http://internal.example.com/a", true},
		{"http://app.corp/a", true},
		{"http://example.org/a", false},
	} {
		u, _ := url.Parse(tt.target)
		got, err := proxy(&http.Request{URL: u})
		if err != nil {
			t.Fatalf("proxy(%s): %v", tt.target, err)
		}
		if tt.direct && got != nil {
			t.Errorf("expected %s to bypass proxy, got %v", tt.target, got)
		}
		if !tt.direct && (got == nil || got.Host != "proxy.local:3128") {
			t.Errorf("expected %s to use proxy, got %v", tt.target, got)
		}
	}
}
