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
	Port         int           `yaml:"port"`
	APIKey       string        `yaml:"api_key"`       // bearer token guarding the API; empty disables the guard
	Workers      int           `yaml:"workers"`       // render job workers
	ImageTimeout time.Duration `yaml:"image_timeout"` // deadline for synchronous image requests; 0 keeps the default
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AIConfig struct {
	GeminiKey       string        `yaml:"gemini_key"` // overridden by GEMINI_API_KEY when set
	GeminiURL       string        `yaml:"gemini_url"`
	EditModel       string        `yaml:"edit_model"`
	ImageModel      string        `yaml:"image_model"`
	VideoModel      string        `yaml:"video_model"`
	MaxAttempts     int           `yaml:"max_attempts"` // edit retry ceiling; 0 = unbounded
	RetryDelay      time.Duration `yaml:"retry_delay"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	ConcurrentLimit int           `yaml:"concurrent_limit"` // max concurrent provider calls
}

type RedisConfig struct {
	URL      string `yaml:"url"` // empty disables rate limiting
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"` // requests per client per minute
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	AI        AIConfig        `yaml:"ai"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

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

	// The process credential comes from the environment when present;
	// its absence is not validated here, the provider will reject calls.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.AI.GeminiKey = key
	}

	applyDefaults(&cfg)

	if cfg.Server.Port <= 0 {
		return nil, errors.New("server.port is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Workers <= 0 {
		cfg.Server.Workers = 4
	}
	if cfg.Server.ImageTimeout <= 0 {
		cfg.Server.ImageTimeout = 5 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.EditModel == "" {
		cfg.AI.EditModel = "gemini-2.5-flash-image-preview"
	}
	if cfg.AI.ImageModel == "" {
		cfg.AI.ImageModel = "imagen-4.0-generate-001"
	}
	if cfg.AI.VideoModel == "" {
		cfg.AI.VideoModel = "veo-3.0-generate-001"
	}
	if cfg.AI.RetryDelay <= 0 {
		cfg.AI.RetryDelay = time.Second
	}
	if cfg.AI.PollInterval <= 0 {
		cfg.AI.PollInterval = 10 * time.Second
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 16
	}
	if cfg.RateLimit.PerMinute <= 0 {
		cfg.RateLimit.PerMinute = 30
	}
}
