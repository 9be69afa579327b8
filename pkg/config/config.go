package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds process-level settings shared by the command-line tools.
// API credentials live in the yadisk package config.
type Config struct {
	LogLevel        string
	LogOutputs      []string
	LogErrorOutputs []string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogOutputs:      splitList(getEnv("LOG_OUTPUTS", "stderr,info.log")),
		LogErrorOutputs: splitList(getEnv("LOG_ERROR_OUTPUTS", "stderr")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if len(c.LogOutputs) == 0 {
		return fmt.Errorf("LOG_OUTPUTS must name at least one sink")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
