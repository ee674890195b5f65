// Command eventlog tails domain events from NATS JetStream and logs them.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"doc-assistant-be/internal/config"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/pkg/events"
	pktNats "doc-assistant-be/pkg/nats"
)

func main() {
	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = sub.Subscribe(ctx, pktNats.SubjectPrefix+">", "eventlog", func(ctx context.Context, event events.Event) error {
		sysLogger.Info("EVENTLOG", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	<-ctx.Done()
}
