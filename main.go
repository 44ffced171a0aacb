package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/scrim-bot/app"
	"github.com/Black-And-White-Club/scrim-bot/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(ctx, cfg, app.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	runErr := application.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := application.Close(closeCtx); err != nil {
		slog.Error("Error during shutdown", slog.String("error", err.Error()))
	}

	if runErr != nil {
		slog.Error("Application stopped with error", slog.String("error", runErr.Error()))
		os.Exit(1)
	}
	slog.Info("Application shut down gracefully")
}
