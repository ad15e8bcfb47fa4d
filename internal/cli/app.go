package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rcliao/text-assist/internal/assist"
	"github.com/rcliao/text-assist/internal/config"
	"github.com/rcliao/text-assist/internal/generate"
	"github.com/rcliao/text-assist/internal/kv"
	"github.com/rcliao/text-assist/internal/memory"
	"github.com/rcliao/text-assist/internal/telemetry"
)

// app is the wired object graph shared by the commands.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	level     *slog.LevelVar
	registry  *prometheus.Registry
	metrics   *telemetry.Metrics
	kv        kv.Store
	mem       *memory.Store
	assistant *assist.Assistant
}

// newApp wires config, logging, storage, generation, memory and the
// assistant. Logs go to logOut so stdout stays clean for command output.
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	logger, level := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format, logOut)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics(reg)

	store, err := kv.Open(ctx, kv.Options{
		Driver: cfg.Storage.Driver,
		Path:   cfg.Storage.Path,
		Redis: kv.RedisOptions{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			Prefix:   cfg.Storage.Redis.Prefix,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	backend, err := generate.New(cfg.Generation)
	if err != nil {
		store.Close()
		return nil, err
	}
	gen := generate.Instrument(backend, metrics)

	var summarizer memory.Summarizer
	if _, off := backend.(generate.Unavailable); !off {
		summarizer = generate.NewSummarizer(gen)
	}

	mem, err := memory.NewStore(ctx, memory.Config{
		KV:         store,
		Summarizer: summarizer,
		Options: memory.Options{
			MaxItems:           cfg.Memory.MaxItems,
			SummarizeThreshold: cfg.Memory.SummarizeThreshold,
			StorageKey:         cfg.Memory.StorageKey,
			SummarizeTimeout:   cfg.Memory.SummarizeTimeout,
			DefaultTopK:        cfg.Memory.TopK,
		},
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		level:    level,
		registry: reg,
		metrics:  metrics,
		kv:       store,
		mem:      mem,
		assistant: assist.New(assist.Config{
			Generator: gen,
			Memory:    mem,
			TopK:      cfg.Memory.TopK,
			Logger:    logger,
			Metrics:   metrics,
		}),
	}, nil
}

// Close waits for pending memory writes, then closes storage.
func (a *app) Close() error {
	a.mem.Close()
	return a.kv.Close()
}

// openApp loads the config and wires the app for a CLI command.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, os.Stderr)
}
