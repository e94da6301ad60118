package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/eventos/internal/app/audit"
	"github.com/magabrotheeeer/eventos/internal/config"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("starting eventos-audit", slog.String("env", cfg.Env), slog.String("exchange", cfg.Exchange))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := audit.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize audit app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("audit app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("eventos-audit stopped gracefully")
}
