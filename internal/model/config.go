package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete runtime configuration for brandprint
type Config struct {
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Store        StoreConfig        `yaml:"store" mapstructure:"store"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls page and stylesheet fetching
type HTTPConfig struct {
	PageTimeout       time.Duration `yaml:"page_timeout" mapstructure:"page_timeout"`             // Per page fetch (including retries)
	StylesheetTimeout time.Duration `yaml:"stylesheet_timeout" mapstructure:"stylesheet_timeout"` // Per stylesheet fetch
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRetries        int           `yaml:"max_retries" mapstructure:"max_retries"`
	InitialBackoff    time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls the fetch cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitingConfig controls per-domain request pacing
type RateLimitingConfig struct {
	RequestsPerSecond float64      `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 disables
	BurstSize         int          `yaml:"burst_size" mapstructure:"burst_size"`
	Domains           []DomainRate `yaml:"domains,omitempty" mapstructure:"domains"` // Per-host overrides
}

// DomainRate overrides the request pacing for one host
type DomainRate struct {
	Host              string  `yaml:"host" mapstructure:"host"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 leaves the host unpaced
	BurstSize         int     `yaml:"burst_size,omitempty" mapstructure:"burst_size"`         // 0 uses rate_limiting.burst_size
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// StoreConfig selects where profiles are persisted
type StoreConfig struct {
	Path string `yaml:"path,omitempty" mapstructure:"path"` // SQLite file; empty disables persistence
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			PageTimeout:       30 * time.Second,
			StylesheetTimeout: 10 * time.Second,
			UserAgent:         "Mozilla/5.0 (compatible; Brandprint/0.1; +https://github.com/ppiankov/brandprint)",
			MaxBodyBytes:      5_000_000,
			MaxRetries:        3,
			InitialBackoff:    time.Second,
			RespectRobots:     false,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "brandprint")
	}
	return filepath.Join(dir, "brandprint")
}
