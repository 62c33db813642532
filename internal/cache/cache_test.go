package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/brandprint/internal/model"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey(KindPage, "https://example.com/")
	b := CacheKey(KindStylesheet, "https://example.com/")
	if a == b {
		t.Error("expected different keys for different kinds")
	}
	if !strings.HasPrefix(a, "brandprint:v1:page:") {
		t.Errorf("unexpected key prefix: %s", a)
	}
	if CacheKey(KindPage, "https://example.com/") != a {
		t.Error("expected stable keys")
	}
}

func TestMemoryCache_CopiesValues(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	body := []byte("body{color:red}")
	if err := c.Set("k", body, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	body[0] = 'X'

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != "body{color:red}" {
		t.Errorf("cached value was mutated: %s", got)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := CacheKey(KindStylesheet, "https://example.com/site.css")

	if err := c.Set(key, []byte("a{}"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := c.Get(key)
	if !ok || string(got) != "a{}" {
		t.Fatalf("expected hit with a{}, got %q %v", got, ok)
	}

	if err := c.Set(key, []byte("b{}"), -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("expected expired entry to miss")
	}

	if err := c.Delete(key); err != nil {
		t.Errorf("delete of missing entry should not fail: %v", err)
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := c.disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, ok := c.memory.Get("k"); ok {
		t.Fatal("memory layer should start empty")
	}
	if got, ok := c.Get("k"); !ok || string(got) != "v" {
		t.Fatalf("expected disk hit, got %q %v", got, ok)
	}
	if _, ok := c.memory.Get("k"); !ok {
		t.Error("expected disk hit to be promoted to memory")
	}
}

func TestFromConfig(t *testing.T) {
	if FromConfig(model.CacheConfig{Enabled: false}) != nil {
		t.Error("expected nil cache when disabled")
	}
	if _, ok := FromConfig(model.CacheConfig{Enabled: true}).(*MemoryCache); !ok {
		t.Error("expected memory cache without a directory")
	}
	if _, ok := FromConfig(model.CacheConfig{Enabled: true, Dir: t.TempDir()}).(*LayeredCache); !ok {
		t.Error("expected layered cache with a directory")
	}
}
