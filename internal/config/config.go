package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// app config, mostly AI provider and interview pacing related
type Config struct {
	Provider          string
	MaxTurns          int
	GenerationTimeout time.Duration
	SessionTTL        time.Duration
	RedisAddr         string
	Port              string
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:          getEnvOrDefault("AI_PROVIDER", "openai"),
		MaxTurns:          getEnvIntOrDefault("INTERVIEW_MAX_TURNS", 3),
		GenerationTimeout: getEnvDurationOrDefault("GENERATION_TIMEOUT", 30*time.Second),
		SessionTTL:        getEnvDurationOrDefault("SESSION_TTL", time.Hour),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		Port:              getEnvOrDefault("PORT", "8080"),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "openai" && config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: openai, gemini")
	}
	if config.MaxTurns < 1 {
		return errors.New("INTERVIEW_MAX_TURNS must be at least 1")
	}
	if config.GenerationTimeout <= 0 {
		return errors.New("GENERATION_TIMEOUT must be positive")
	}
	if config.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
