package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/bonk-fanzone/internal/app"
	"github.com/riskibarqy/bonk-fanzone/internal/config"
	"github.com/riskibarqy/bonk-fanzone/internal/observability"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("load .env failed", "error", envErr)
	}

	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		logger.Error("start telemetry", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	exitCode := 0
	if err := application.Run(ctx); err != nil {
		logger.Error("http server failed", "error", err)
		exitCode = 1
	}

	if err := application.Close(); err != nil {
		logger.Warn("close app", "error", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := telemetry.Shutdown(flushCtx); err != nil {
		logger.Warn("shutdown telemetry", "error", err)
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
