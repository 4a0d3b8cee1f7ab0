package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	HTTPAddr       string
	LogLevel       string
	ExcludeCenter  bool
	RoomCodeLength int
	RoomTTL        time.Duration
	AllowedOrigin  string // empty allows any origin
}

func Default() Config {
	return Config{
		HTTPAddr:       ":8080",
		LogLevel:       "info",
		RoomCodeLength: 6,
		RoomTTL:        24 * time.Hour,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load layers defaults, the YAML file named by CONFIG_FILE (if any) and the
// environment, later layers winning.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.ExcludeCenter = getenvBool("EXCLUDE_CENTER", cfg.ExcludeCenter)
	cfg.RoomCodeLength = getenvInt("ROOM_CODE_LENGTH", cfg.RoomCodeLength)
	cfg.RoomTTL = getenvDuration("ROOM_TTL", cfg.RoomTTL)
	cfg.AllowedOrigin = getenv("ALLOWED_ORIGIN", cfg.AllowedOrigin)

	if cfg.RoomCodeLength <= 0 {
		return cfg, fmt.Errorf("room code length must be positive, got %d", cfg.RoomCodeLength)
	}
	return cfg, nil
}

// fileConfig mirrors Config with RoomTTL as text, since yaml.v2 has no
// duration support.
type fileConfig struct {
	HTTPAddr       *string `yaml:"http_addr"`
	LogLevel       *string `yaml:"log_level"`
	ExcludeCenter  *bool   `yaml:"exclude_center"`
	RoomCodeLength *int    `yaml:"room_code_length"`
	RoomTTL        *string `yaml:"room_ttl"`
	AllowedOrigin  *string `yaml:"allowed_origin"`
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.UnmarshalStrict(raw, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.HTTPAddr != nil {
		c.HTTPAddr = *fc.HTTPAddr
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.ExcludeCenter != nil {
		c.ExcludeCenter = *fc.ExcludeCenter
	}
	if fc.RoomCodeLength != nil {
		c.RoomCodeLength = *fc.RoomCodeLength
	}
	if fc.RoomTTL != nil {
		d, err := time.ParseDuration(*fc.RoomTTL)
		if err != nil {
			return fmt.Errorf("parse config %s: room_ttl: %w", path, err)
		}
		c.RoomTTL = d
	}
	if fc.AllowedOrigin != nil {
		c.AllowedOrigin = *fc.AllowedOrigin
	}
	return nil
}
