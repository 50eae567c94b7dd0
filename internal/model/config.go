package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete runtime configuration.
type Config struct {
	HTTP         HTTPConfig      `yaml:"http"`
	Cache        CacheConfig     `yaml:"cache"`
	Robots       RobotsConfig    `yaml:"robots"`
	RateLimiting RateLimitConfig `yaml:"rate_limiting"`
	Concurrency  ConcConfig      `yaml:"concurrency"`
	Output       OutputConfig    `yaml:"output"`
}

// HTTPConfig controls the article fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
}

// CacheConfig controls the layered fetch cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// RobotsConfig controls robots.txt compliance checks before fetching.
type RobotsConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"`
}

// RateLimitConfig controls per-domain request pacing in batch mode.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// ConcConfig controls batch fan-out. A single extraction is always synchronous.
type ConcConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool   `yaml:"verbose"`
	Excel   string `yaml:"excel"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cacheDir := ".pubscrape-cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".pubscrape", "cache")
	}

	return &Config{
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Mozilla/5.0 (ArticleExtractor/1.0)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Robots: RobotsConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 1.0,
			BurstSize:         3,
		},
		Concurrency: ConcConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Excel: "articles.xlsx",
		},
	}
}
