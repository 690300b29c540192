package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Content
	PostsDir       string
	SiteTitle      string
	PipelineConfig string // Optional YAML stage list; empty means defaults.
	BuildOnStart   bool

	// Auth. Admin routes are not mounted when empty.
	AdminAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Request limits
	MaxPreviewBytes int64

	// Job state and stats
	JobTTL      time.Duration
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		PostsDir:       envOr("POSTS_DIR", "posts"),
		SiteTitle:      envOr("SITE_TITLE", "Blog"),
		PipelineConfig: os.Getenv("PIPELINE_CONFIG"),
		BuildOnStart:   envBool("BUILD_ON_START", true),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxPreviewBytes: envInt64("MAX_PREVIEW_BYTES", 1<<20), // 1MB

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxPreviewBytes <= 0 {
		cfg.MaxPreviewBytes = 1 << 20
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	info, err := os.Stat(c.PostsDir)
	if err != nil {
		return fmt.Errorf("POSTS_DIR: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("POSTS_DIR %q is not a directory", c.PostsDir)
	}
	if c.PipelineConfig != "" {
		if _, err := os.Stat(c.PipelineConfig); err != nil {
			return fmt.Errorf("PIPELINE_CONFIG: %w", err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
