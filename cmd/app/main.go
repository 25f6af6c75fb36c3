package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/makersair/fhbridge/api"
	"github.com/makersair/fhbridge/config"
	"github.com/makersair/fhbridge/internal/airmax"
	"github.com/makersair/fhbridge/internal/bootstrap"
	"github.com/makersair/fhbridge/internal/cache"
	"github.com/makersair/fhbridge/internal/kafka"
	"github.com/makersair/fhbridge/internal/makersuite"
	"github.com/makersair/fhbridge/internal/repository"
	"github.com/makersair/fhbridge/internal/service/flightid"
	"github.com/makersair/fhbridge/internal/service/webhook"
	"github.com/makersair/fhbridge/internal/store"
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

	var resolverOpts []flightid.ResolverOption
	if cfg.Redis.Addr != "" {
		searchTTL := time.Duration(cfg.Booking.SearchCacheTTLSeconds) * time.Second
		resolverOpts = append(resolverOpts, flightid.WithCache(cache.NewRedisCache(cfg.Redis, searchTTL)))
	}
	resolver := flightid.NewResolver(airmax.NewClient(cfg.Airmax), resolverOpts...)

	var serviceOpts []webhook.WebhookServiceOption
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		serviceOpts = append(serviceOpts,
			webhook.WithProducer(producer, cfg.Kafka.WebhookEventsTopic),
			webhook.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	if cfg.Database.Host != "" {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		serviceOpts = append(serviceOpts, webhook.WithDeliveryLog(repository.NewDeliveryLog(pool)))
	}

	pending := store.NewPendingStore(time.Duration(cfg.Booking.PendingTTLMinutes) * time.Minute)
	go sweepPending(ctx, pending, time.Duration(cfg.Booking.SweepIntervalMinutes)*time.Minute)

	service := webhook.NewWebhookService(pending, resolver, makersuite.NewClient(cfg.MakerSuite), serviceOpts...)
	handler := api.NewWebhookHandler(service)

	if err := bootstrap.Run(ctx, cfg, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// sweepPending drops expired first legs on its own timer so expiry never
// runs on a request goroutine.
func sweepPending(ctx context.Context, pending *store.PendingStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := pending.Sweep(); n > 0 {
				log.Printf("swept %d expired pending bookings", n)
			}
		}
	}
}
