package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEXT_ASSIST_TEST_VAR", "hello")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEXT_ASSIST_TEST_VAR}", "hello"},
		{"${TEXT_ASSIST_TEST_VAR:default}", "hello"},
		{"${TEXT_ASSIST_UNSET_VAR:fallback}", "fallback"},
		{"${TEXT_ASSIST_UNSET_VAR}", ""},
		{"no vars here", "no vars here"},
		{"prefix-${TEXT_ASSIST_TEST_VAR}-suffix", "prefix-hello-suffix"},
	}
	for _, tt := range tests {
		if got := expandEnvVars(tt.input); got != tt.expected {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Memory.MaxItems != 50 || cfg.Memory.SummarizeThreshold != 500 || cfg.Memory.TopK != 3 {
		t.Errorf("memory defaults = %+v", cfg.Memory)
	}
	if cfg.Memory.StorageKey != "conversationMemory" {
		t.Errorf("storage key = %q", cfg.Memory.StorageKey)
	}
	if cfg.Server.Addr != "127.0.0.1:8787" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
}

func TestLoadFile_OverridesAndEnv(t *testing.T) {
	t.Setenv("TEXT_ASSIST_TEST_KEY", "sk-test")
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
memory:
  max_items: 10
  summarize_timeout: 5s
storage:
  driver: redis
  redis:
    addr: "${TEXT_ASSIST_TEST_REDIS_ADDR:cache:6379}"
generation:
  provider: openai
  api_key: "${TEXT_ASSIST_TEST_KEY}"
  model: gpt-4o-mini
server:
  allowed_origins: ["chrome-extension://abc"]
log:
  format: json
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Memory.MaxItems != 10 || cfg.Memory.SummarizeTimeout != 5*time.Second {
		t.Errorf("memory = %+v", cfg.Memory)
	}
	if cfg.Memory.TopK != 3 {
		t.Errorf("unset top_k lost its default: %d", cfg.Memory.TopK)
	}
	if cfg.Storage.Driver != "redis" || cfg.Storage.Redis.Addr != "cache:6379" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Generation.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.Generation.APIKey)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Log.Format != "json" {
		t.Errorf("server=%+v log=%+v", cfg.Server, cfg.Log)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"syntax":   "memory: [unclosed",
		"max":      "memory:\n  max_items: 0\n",
		"top_k":    "memory:\n  top_k: -1\n",
		"driver":   "storage:\n  driver: etcd\n",
		"provider": "generation:\n  provider: magic\n",
		"level":    "log:\n  level: loud\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			writeFile(t, path, content)
			if _, err := LoadFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Memory.MaxItems = 0
	cfg.Generation.Provider = "x"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"max_items", "generation.provider"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom.yaml")
	if got := DefaultPath(); got != "/tmp/custom.yaml" {
		t.Errorf("DefaultPath = %q", got)
	}
}

func TestLoader_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "memory:\n  top_k: 3\n")

	l := NewLoader(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := l.Load(); err != nil {
		t.Fatal(err)
	}
	reloaded := make(chan *Config, 4)
	l.OnReload(func(c *Config) { reloaded <- c })
	if err := l.Watch(); err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	writeFile(t, path, "memory:\n  top_k: 7\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-reloaded:
			if c.Memory.TopK == 7 {
				if l.Config().Memory.TopK != 7 {
					t.Errorf("Config() not updated")
				}
				return
			}
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}
