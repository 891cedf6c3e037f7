package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/outreach-planner/internal/domain"
	"github.com/ignite/outreach-planner/internal/pipeline"
)

// ErrBatchNotFound is returned when a batch result is not in the cache.
var ErrBatchNotFound = fmt.Errorf("batch result: %w", domain.ErrInvalidInput)

// BatchCache keeps recent batch results in Redis so the API can serve
// batch lookups without recomputing the plans.
type BatchCache struct {
	redis  *redis.Client
	ttl    time.Duration
	prefix string
}

// NewBatchCache creates a Redis-backed batch result cache.
func NewBatchCache(client *redis.Client, ttl time.Duration) *BatchCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &BatchCache{redis: client, ttl: ttl, prefix: "batch:result:"}
}

// Put stores a batch result under its batch ID.
func (c *BatchCache) Put(ctx context.Context, result *pipeline.BatchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling batch result: %w", err)
	}
	if err := c.redis.Set(ctx, c.prefix+result.BatchID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("caching batch %s: %w", result.BatchID, err)
	}
	return nil
}

// Get returns a cached batch result, or ErrBatchNotFound when the ID is
// unknown or the entry expired.
func (c *BatchCache) Get(ctx context.Context, batchID string) (*pipeline.BatchResult, error) {
	data, err := c.redis.Get(ctx, c.prefix+batchID).Bytes()
	if err == redis.Nil {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching batch %s: %w", batchID, err)
	}

	var result pipeline.BatchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding batch %s: %w", batchID, err)
	}
	return &result, nil
}

// Delete removes a cached batch result.
func (c *BatchCache) Delete(ctx context.Context, batchID string) error {
	return c.redis.Del(ctx, c.prefix+batchID).Err()
}
