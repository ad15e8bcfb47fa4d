// Package config loads text-assist settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EnvPath overrides the default config file location.
const EnvPath = "TEXT_ASSIST_CONFIG"

type Config struct {
	Memory     MemoryConfig     `yaml:"memory"`
	Storage    StorageConfig    `yaml:"storage"`
	Generation GenerationConfig `yaml:"generation"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

type MemoryConfig struct {
	MaxItems           int           `yaml:"max_items"`
	SummarizeThreshold int           `yaml:"summarize_threshold"`
	TopK               int           `yaml:"top_k"`
	StorageKey         string        `yaml:"storage_key"`
	SummarizeTimeout   time.Duration `yaml:"summarize_timeout"`
}

type StorageConfig struct {
	Driver string      `yaml:"driver"`
	Path   string      `yaml:"path"`
	Redis  RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type GenerationConfig struct {
	Provider string        `yaml:"provider"`
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	APIKey         string        `yaml:"api_key"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultDir returns ~/.text-assist.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".text-assist"
	}
	return filepath.Join(home, ".text-assist")
}

// DefaultPath returns $TEXT_ASSIST_CONFIG or ~/.text-assist/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

func DefaultConfig() *Config {
	return &Config{
		Memory: MemoryConfig{
			MaxItems:           50,
			SummarizeThreshold: 500,
			TopK:               3,
			StorageKey:         "conversationMemory",
			SummarizeTimeout:   30 * time.Second,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   filepath.Join(DefaultDir(), "memory.db"),
			Redis:  RedisConfig{Addr: "localhost:6379", Prefix: "text-assist:"},
		},
		Generation: GenerationConfig{
			Provider: "none",
			Timeout:  60 * time.Second,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Memory.MaxItems <= 0 {
		errs = append(errs, fmt.Errorf("memory.max_items must be positive, got %d", c.Memory.MaxItems))
	}
	if c.Memory.SummarizeThreshold <= 0 {
		errs = append(errs, fmt.Errorf("memory.summarize_threshold must be positive, got %d", c.Memory.SummarizeThreshold))
	}
	if c.Memory.TopK <= 0 {
		errs = append(errs, fmt.Errorf("memory.top_k must be positive, got %d", c.Memory.TopK))
	}
	if c.Memory.StorageKey == "" {
		errs = append(errs, errors.New("memory.storage_key must not be empty"))
	}
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for the sqlite driver"))
		}
	case "redis":
		if c.Storage.Redis.Addr == "" {
			errs = append(errs, errors.New("storage.redis.addr is required for the redis driver"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of sqlite, redis, memory", c.Storage.Driver))
	}
	switch c.Generation.Provider {
	case "openai", "ollama", "none":
	default:
		errs = append(errs, fmt.Errorf("generation.provider %q is not one of openai, ollama, none", c.Generation.Provider))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}
	return errors.Join(errs...)
}
