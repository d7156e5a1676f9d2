// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	PublicURL   string `yaml:"public_url"`   // base URL used in mandate success/error redirects
	AdminSecret string `yaml:"admin_secret"` // HMAC secret for admin session tokens
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// TrialConfig replaces the legacy lazily-created trial-settings row: it is
// loaded once at process start and threaded into the trial-start and sweep
// paths instead of being re-read per request.
type TrialConfig struct {
	DurationDays int      `yaml:"duration_days"`
	Enabled      bool     `yaml:"enabled"`
	Features     []string `yaml:"features"`
}

type GatewayConfig struct {
	Razorpay struct {
		KeyID         string `yaml:"key_id"`
		KeySecret     string `yaml:"key_secret"`
		WebhookSecret string `yaml:"webhook_secret"`
		MerchantVPA   string `yaml:"merchant_vpa"` // payee address on generated UPI intents
		Sandbox       bool   `yaml:"sandbox"`
	} `yaml:"razorpay"`
}

type SchedulerConfig struct {
	// SweepInterval enables the in-process sweep ticker when > 0.
	// Leave zero to drive sweeps only via POST /scheduler/run.
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type SecurityConfig struct {
	EncryptionKey string `yaml:"encryption_key"` // AES key for notification text at rest; empty disables
}

type IngestConfig struct {
	RateLimit   int           `yaml:"rate_limit"`   // requests per window per user
	RateWindow  time.Duration `yaml:"rate_window"`  // rate limiter window
	DedupWindow time.Duration `yaml:"dedup_window"` // upiId+amount duplicate window (each side of now)
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Trial     TrialConfig     `yaml:"trial"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Security  SecurityConfig  `yaml:"security"`
	Ingest    IngestConfig    `yaml:"ingest"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Trial.DurationDays <= 0 {
		cfg.Trial.DurationDays = 7
	}
	if len(cfg.Trial.Features) == 0 {
		cfg.Trial.Features = []string{"Basic UPI alerts", "Limited reports", "QR Code Generation"}
	}
	if cfg.Ingest.RateLimit <= 0 {
		cfg.Ingest.RateLimit = 30
	}
	if cfg.Ingest.RateWindow <= 0 {
		cfg.Ingest.RateWindow = time.Minute
	}
	if cfg.Ingest.DedupWindow <= 0 {
		cfg.Ingest.DedupWindow = 5 * time.Minute
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Server.AdminSecret == "" && !dev {
		return nil, errors.New("server.admin_secret is required outside dev mode")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return 5 * time.Minute
	}
	return d
}
