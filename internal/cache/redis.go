package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/makersair/fhbridge/config"
	"github.com/makersair/fhbridge/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps Airmax search results per route and date so the second
// leg of a round trip does not repeat the first leg's search.
type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

func (c *RedisCache) GetSearchResults(ctx context.Context, origin, destination, date string) ([]domain.FlightCandidate, error) {
	data, err := c.client.Get(ctx, searchKey(origin, destination, date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var candidates []domain.FlightCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (c *RedisCache) SetSearchResults(ctx context.Context, origin, destination, date string, candidates []domain.FlightCandidate) error {
	payload, err := json.Marshal(candidates)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(origin, destination, date), payload, c.searchTTL).Err()
}

func searchKey(origin, destination, date string) string {
	return fmt.Sprintf("search:%s:%s:%s", origin, destination, date)
}
