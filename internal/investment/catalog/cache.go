package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

// QuoteCache holds quoted catalog assets by id in front of the asset repository.
// GetAssets returns only the ids it holds; callers load the rest from the repository.
type QuoteCache interface {
	SetAssets(ctx context.Context, assets []models.Asset) error
	GetAssets(ctx context.Context, assetIDs []uuid.UUID) (map[uuid.UUID]models.Asset, error)
}

const quoteKeyPrefix = "quote:"

func quoteKey(assetID uuid.UUID) string {
	return quoteKeyPrefix + assetID.String()
}

type RedisQuoteCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisQuoteCache(client *redis.Client, ttl time.Duration) *RedisQuoteCache {
	return &RedisQuoteCache{redis: client, ttl: ttl}
}

func (c *RedisQuoteCache) SetAssets(ctx context.Context, assets []models.Asset) error {
	if len(assets) == 0 {
		return nil
	}

	pipe := c.redis.Pipeline()
	for _, asset := range assets {
		assetJSON, err := json.Marshal(asset)
		if err != nil {
			return fmt.Errorf("can't marshal asset %s: %w", asset.ID, err)
		}
		pipe.Set(ctx, quoteKey(asset.ID), assetJSON, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache assets: %w", err)
	}
	return nil
}

func (c *RedisQuoteCache) GetAssets(ctx context.Context, assetIDs []uuid.UUID) (map[uuid.UUID]models.Asset, error) {
	assets := make(map[uuid.UUID]models.Asset, len(assetIDs))
	if len(assetIDs) == 0 {
		return assets, nil
	}

	keys := make([]string, len(assetIDs))
	for i, id := range assetIDs {
		keys[i] = quoteKey(id)
	}

	values, err := c.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached assets: %w", err)
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// key missing or expired
			continue
		}
		var asset models.Asset
		if err := json.Unmarshal([]byte(s), &asset); err != nil || asset.ID != assetIDs[i] {
			continue
		}
		assets[asset.ID] = asset
	}
	return assets, nil
}

// NoopQuoteCache is used when Redis is not configured.
type NoopQuoteCache struct{}

func (NoopQuoteCache) SetAssets(context.Context, []models.Asset) error { return nil }

func (NoopQuoteCache) GetAssets(context.Context, []uuid.UUID) (map[uuid.UUID]models.Asset, error) {
	return map[uuid.UUID]models.Asset{}, nil
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return client, nil
}
