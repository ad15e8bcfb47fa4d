package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/text-assist/internal/assist"
	"github.com/rcliao/text-assist/internal/config"
	"github.com/rcliao/text-assist/internal/generate"
)

func TestApplyOverrides(t *testing.T) {
	defer func() { dbPath, logLevel = "", "" }()

	cfg := config.DefaultConfig()
	cfg.Storage.Driver = "redis"
	dbPath = "/tmp/x.db"
	logLevel = "debug"
	applyOverrides(cfg)
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.Path != "/tmp/x.db" || cfg.Log.Level != "debug" {
		t.Errorf("overrides not applied: %+v %+v", cfg.Storage, cfg.Log)
	}
}

func TestReadInput_Args(t *testing.T) {
	got, err := readInput([]string{"fix", "the", "spelling"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "fix the spelling" {
		t.Errorf("got %q", got)
	}
}

func TestNewApp_SQLiteRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "memory.db")
	ctx := context.Background()

	a, err := newApp(ctx, cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.mem.AddConversation(ctx, "write a toast", "To friends old and new", nil); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := newApp(ctx, cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if b.mem.Len() != 1 {
		t.Errorf("reopened len = %d, want 1", b.mem.Len())
	}
}

func TestNewApp_NoProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = "memory"
	a, err := newApp(context.Background(), cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	_, err = a.assistant.Handle(context.Background(), assist.Input{Text: "proofread this"})
	if err == nil || !strings.Contains(err.Error(), generate.ErrUnavailable.Error()) {
		t.Errorf("err = %v, want unavailable", err)
	}
}

func TestNewApp_BadProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = "memory"
	cfg.Generation.Provider = "carrier-pigeon"
	if _, err := newApp(context.Background(), cfg, io.Discard); err == nil {
		t.Fatal("expected error")
	}
}

func TestRouteCommand(t *testing.T) {
	defer func() { formatFlag = "json" }()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"route", "--format", "text", "translate", "this", "into", "German"})
	defer RootCmd.SetArgs(nil)
	if err := RootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "intent: translate") || !strings.Contains(got, "language: de") {
		t.Errorf("output = %q", got)
	}
}
