package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-service/config"
	"github.com/oksasatya/go-ddd-user-service/internal/infrastructure/events"
	"github.com/oksasatya/go-ddd-user-service/pkg/helpers"
)

// events_worker drains the user events queue into the structured log as an audit trail.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-events-worker", cfg.Env)

	if !cfg.EventsEnabled {
		logger.Info("EVENTS_ENABLED=false; events worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQUserEventQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	// prefetch for fair dispatch
	msgs, closeFn, err := events.Subscribe(cfg.RabbitMQURL, cfg.RabbitMQUserEventQueue, 16)
	if err != nil {
		logger.Fatalf("subscribe: %v", err)
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.WithField("queue", cfg.RabbitMQUserEventQueue).Info("events worker started")
	events.Consume(ctx, msgs, func(_ context.Context, evt events.UserEvent) error {
		logger.WithFields(logrus.Fields{
			"event":       evt.Type,
			"user_id":     evt.UserID,
			"fields":      evt.Fields,
			"occurred_at": evt.OccurredAt,
		}).Info("user event")
		return nil
	}, logger)
	logger.Info("events worker stopped")
}
