package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/museum-catalog/internal/config"
	"github.com/magabrotheeeer/museum-catalog/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/museum-catalog/internal/lib/sl"
	notifierservice "github.com/magabrotheeeer/museum-catalog/internal/services/notifier"
)

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting feedback-worker", slog.String("env", cfg.Env))

	conn, err := rabbitmq.Connect(cfg.RabbitConnection.AddressRabbit,
		cfg.RabbitConnection.Retries, cfg.RabbitConnection.RetryDelay)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("success to connect to RabbitMQ", slog.String("URL", cfg.RabbitConnection.AddressRabbit))
	defer func() {
		_ = conn.Close()
	}()

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetCatalogQueues())
	if err != nil {
		logger.Error("failed to setup RabbitMQ channel", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("success to setup RabbitMQ channel")
	defer func() {
		_ = ch.Close()
	}()

	notifier := notifierservice.NewNotifierService(logger)

	if err := rabbitmq.ConsumerMessage(ctx, ch, "feedback.created", notifier.HandleMessage); err != nil {
		logger.Error("failed to start consumer", sl.Err(err))
		os.Exit(1)
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	logger.Info("feedback-worker shutting down gracefully")
}
