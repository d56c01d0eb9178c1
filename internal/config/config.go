package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment
type Config struct {
	HTTPAddr string

	RoomCapacity        int
	CountdownSeconds    int
	RestartDelaySeconds int

	KeepAliveInterval time.Duration
	ScorePushInterval time.Duration
	RequeueAfterMatch bool

	// RedisAddr selects the Redis stores; empty keeps everything in memory
	RedisAddr     string
	RedisPassword string

	AllowedOrigins []string

	InboundRate  float64
	InboundBurst int

	LogLevel string
	LogFile  string

	// Seed fixes the dice for reproducible runs; 0 seeds from the clock
	Seed int64
}

// Load reads an optional .env file then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables alone
func FromEnv() (*Config, error) {
	var (
		cfg = &Config{
			HTTPAddr:      getEnv("HTTP_ADDR", ":8000"),
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			LogFile:       getEnv("LOG_FILE", ""),
		}
		p parser
	)

	cfg.RoomCapacity = p.getInt("ROOM_CAPACITY", 2)
	cfg.CountdownSeconds = p.getInt("COUNTDOWN_SECONDS", 10)
	cfg.RestartDelaySeconds = p.getInt("RESTART_DELAY_SECONDS", 3)
	cfg.KeepAliveInterval = p.getDuration("KEEPALIVE_INTERVAL", 2*time.Second)
	cfg.ScorePushInterval = p.getDuration("SCORE_PUSH_INTERVAL", time.Second)
	cfg.RequeueAfterMatch = p.getBool("REQUEUE_AFTER_MATCH", true)
	cfg.InboundRate = p.getFloat("INBOUND_RATE", 5)
	cfg.InboundBurst = p.getInt("INBOUND_BURST", 10)
	cfg.Seed = int64(p.getInt("DICE_SEED", 0))
	cfg.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", ""))

	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a server cannot run with
func (c *Config) Validate() error {
	switch {
	case c.RoomCapacity < 2:
		return fmt.Errorf("ROOM_CAPACITY must be at least 2, got %d", c.RoomCapacity)
	case c.CountdownSeconds < 1:
		return fmt.Errorf("COUNTDOWN_SECONDS must be at least 1, got %d", c.CountdownSeconds)
	case c.RestartDelaySeconds < 1:
		return fmt.Errorf("RESTART_DELAY_SECONDS must be at least 1, got %d", c.RestartDelaySeconds)
	case c.KeepAliveInterval <= 0:
		return errors.New("KEEPALIVE_INTERVAL must be positive")
	case c.ScorePushInterval <= 0:
		return errors.New("SCORE_PUSH_INTERVAL must be positive")
	case c.InboundRate <= 0 || c.InboundBurst < 1:
		return errors.New("INBOUND_RATE and INBOUND_BURST must be positive")
	}
	return nil
}

// parser keeps the first conversion error
type parser struct {
	err error
}

func (p *parser) getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" || p.err != nil {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) getFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" || p.err != nil {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) getBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" || p.err != nil {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" || p.err != nil {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, raw, err)
		return fallback
	}
	return v
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
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
