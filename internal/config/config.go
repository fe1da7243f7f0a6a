// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Vision    VisionConfig    `yaml:"vision"`
	Market    MarketConfig    `yaml:"market"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

// VisionConfig defines the item identification backend settings.
type VisionConfig struct {
	Backend      string             `yaml:"backend"` // gemini, openai_compat
	Gemini       GeminiConfig       `yaml:"gemini"`
	OpenAICompat OpenAICompatConfig `yaml:"openai_compat"`
	Timeout      time.Duration      `yaml:"timeout"`
	MaxImages    int                `yaml:"max_images"`
}

// GeminiConfig defines Gemini API settings. The API key comes from the
// GEMINI_API_KEY environment variable.
type GeminiConfig struct {
	Model string `yaml:"model"`
}

// OpenAICompatConfig defines OpenAI-compatible endpoint settings.
type OpenAICompatConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// MarketConfig defines the market snapshot provider settings.
type MarketConfig struct {
	Provider          string          `yaml:"provider"` // live, static
	MinSoldListings   int             `yaml:"min_sold_listings"`
	MinActiveListings int             `yaml:"min_active_listings"`
	Search            SearchConfig    `yaml:"search"`
	RateLimit         RateLimitConfig `yaml:"rate_limit"`
}

// SearchConfig defines the live search backend settings.
type SearchConfig struct {
	Backend string `yaml:"backend"` // gemini
	Model   string `yaml:"model"`
}

// RateLimitConfig defines search rate limiting settings.
type RateLimitConfig struct {
	PerSecond   float64 `yaml:"per_second"`
	Burst       int     `yaml:"burst"`
	DailyBudget int64   `yaml:"daily_budget"`
}

// ScheduleConfig defines periodic job intervals.
type ScheduleConfig struct {
	QuotaReportInterval time.Duration `yaml:"quota_report_interval"`
}

// TelemetryConfig defines optional OTLP export settings.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyVisionDefaults(&cfg.Vision)
	applyMarketDefaults(&cfg.Market)
	applyScheduleDefaults(&cfg.Schedule)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
	if s.MaxUploadBytes == 0 {
		s.MaxUploadBytes = 10 << 20 // 10 MiB per photo
	}
}

func applyVisionDefaults(v *VisionConfig) {
	if v.Backend == "" {
		v.Backend = "gemini"
	}
	if v.Gemini.Model == "" {
		v.Gemini.Model = "gemini-3-flash-preview"
	}
	if v.Timeout == 0 {
		v.Timeout = 60 * time.Second
	}
	if v.MaxImages == 0 {
		v.MaxImages = 5
	}
}

func applyMarketDefaults(m *MarketConfig) {
	if m.Provider == "" {
		m.Provider = "static"
	}
	if m.MinSoldListings == 0 {
		m.MinSoldListings = 3
	}
	if m.MinActiveListings == 0 {
		m.MinActiveListings = 5
	}
	if m.Search.Backend == "" {
		m.Search.Backend = "gemini"
	}
	if m.Search.Model == "" {
		m.Search.Model = "gemini-3-flash-preview"
	}
	applyRateLimitDefaults(&m.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 1.0
	}
	if r.Burst == 0 {
		r.Burst = 3
	}
	if r.DailyBudget == 0 {
		r.DailyBudget = 500
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.QuotaReportInterval == 0 {
		s.QuotaReportInterval = time.Hour
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "resale-analyzer"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535 (got %d)", cfg.Server.Port))
	}

	switch cfg.Vision.Backend {
	case "gemini":
		// API key comes from env, model has a default.
	case "openai_compat":
		if cfg.Vision.OpenAICompat.Endpoint == "" {
			errs = append(
				errs,
				fmt.Errorf("vision.openai_compat.endpoint is required when backend is openai_compat"),
			)
		}
		if cfg.Vision.OpenAICompat.Model == "" {
			errs = append(
				errs,
				fmt.Errorf("vision.openai_compat.model is required when backend is openai_compat"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf("vision.backend must be one of: gemini, openai_compat (got %q)", cfg.Vision.Backend),
		)
	}

	switch cfg.Market.Provider {
	case "live":
		if cfg.Market.Search.Backend != "gemini" {
			errs = append(
				errs,
				fmt.Errorf("market.search.backend must be gemini (got %q)", cfg.Market.Search.Backend),
			)
		}
	case "static":
	default:
		errs = append(
			errs,
			fmt.Errorf("market.provider must be one of: live, static (got %q)", cfg.Market.Provider),
		)
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		errs = append(errs, fmt.Errorf("telemetry.endpoint is required when telemetry is enabled"))
	}

	return errors.Join(errs...)
}
