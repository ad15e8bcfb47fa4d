package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/text-assist/internal/api"
	"github.com/rcliao/text-assist/internal/config"
	"github.com/rcliao/text-assist/internal/telemetry"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assistant and memory over HTTP",
		Long: "Start the HTTP API. The config file is watched; changes to memory.top_k and log.level " +
			"apply without a restart.",
		Run: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	addrFlag, _ := cmd.Flags().GetString("addr")

	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	if addrFlag != "" {
		cfg.Server.Addr = addrFlag
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, os.Stdout)
	if err != nil {
		exitErr("open app", err)
	}
	defer a.Close()
	logger := a.logger
	slog.SetDefault(logger)

	loader := config.NewLoader(getConfigPath(), logger)
	if err := loader.Load(); err != nil {
		logger.Warn("config reload disabled", "error", err)
	} else {
		loader.OnReload(func(next *config.Config) {
			applyOverrides(next)
			a.assistant.SetTopK(next.Memory.TopK)
			a.level.Set(telemetry.ParseLevel(next.Log.Level))
			logger.Info("config reloaded", "top_k", next.Memory.TopK, "log_level", next.Log.Level)
		})
		if err := loader.Watch(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		}
		defer loader.Close()
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(api.Deps{
			Assistant:      a.assistant,
			Memory:         a.mem,
			Metrics:        a.metrics,
			Gatherer:       a.registry,
			Logger:         logger,
			APIKey:         cfg.Server.APIKey,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Version:        Version,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"addr", cfg.Server.Addr,
			"version", Version,
			"storage", cfg.Storage.Driver,
			"provider", cfg.Generation.Provider,
			"memory_entries", a.mem.Len(),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Close()
			exitErr("serve", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
