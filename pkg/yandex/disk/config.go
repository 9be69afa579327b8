package yadisk

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL      = "https://cloud-api.yandex.net"
	DefaultPollInterval = 200 * time.Millisecond
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Token        string
	Timeout      time.Duration
	Poll         PollConfig
}

// PollConfig bounds the wait for asynchronous operations. Zero MaxAttempts and
// zero Timeout mean polling continues until the operation succeeds.
type PollConfig struct {
	Interval     time.Duration
	MaxAttempts  uint
	Timeout      time.Duration
	FailOnFailed bool
}

// DefaultConfig returns a Config for the public API endpoint with the given token.
func DefaultConfig(token string) *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Token:   token,
		Poll: PollConfig{
			Interval: DefaultPollInterval,
		},
	}
}

func LoadConfig() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := DefaultConfig(os.Getenv("YADISK_TOKEN"))
	if baseURL := os.Getenv("YADISK_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.ClientID = os.Getenv("YADISK_CLIENT_ID")
	cfg.ClientSecret = os.Getenv("YADISK_CLIENT_SECRET")

	var err error
	if cfg.Timeout, err = durationEnv("YADISK_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.Poll.Interval, err = durationEnv("YADISK_POLL_INTERVAL", DefaultPollInterval); err != nil {
		return nil, err
	}
	if cfg.Poll.Timeout, err = durationEnv("YADISK_POLL_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if raw := os.Getenv("YADISK_POLL_MAX_ATTEMPTS"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("YADISK_POLL_MAX_ATTEMPTS is invalid: %w", err)
		}
		cfg.Poll.MaxAttempts = uint(n)
	}
	if raw := os.Getenv("YADISK_POLL_FAIL_ON_FAILED"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("YADISK_POLL_FAIL_ON_FAILED is invalid: %w", err)
		}
		cfg.Poll.FailOnFailed = b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("YADISK_BASE_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("YADISK_BASE_URL is invalid: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("YADISK_BASE_URL must be an absolute URL, got %q", c.BaseURL)
	}
	if c.Token == "" {
		return fmt.Errorf("YADISK_TOKEN is required")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("YADISK_POLL_INTERVAL must be positive")
	}
	// ClientID and ClientSecret are only needed to request a token
	return nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s is invalid: %w", key, err)
	}
	return d, nil
}
