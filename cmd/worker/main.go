package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/makersair/fhbridge/config"
	"github.com/makersair/fhbridge/internal/email"
	"github.com/makersair/fhbridge/internal/kafka"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender()

	log.Printf("worker consuming %s", cfg.Kafka.NotificationsTopic)
	if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.WebhookEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("decode event error: %v", err)
			return nil
		}
		return sender.Send(ctx, event)
	}); err != nil && ctx.Err() == nil {
		log.Printf("consumer stopped: %v", err)
	}
}
