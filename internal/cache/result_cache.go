package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"profitum/internal/model"
)

// ResultCache keeps the latest eligibility results per session token so the
// results page does not hit Mongo on every poll.
type ResultCache interface {
	Set(ctx context.Context, token string, results []*model.EligibilityResult) error
	Get(ctx context.Context, token string) ([]*model.EligibilityResult, error)
	Delete(ctx context.Context, token string) error
}

type resultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultCache(client *redis.Client) ResultCache {
	return &resultCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *resultCache) key(token string) string {
	return "simulator:results:" + token
}

func (c *resultCache) Set(ctx context.Context, token string, results []*model.EligibilityResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(token), data, c.ttl).Err()
}

func (c *resultCache) Get(ctx context.Context, token string) ([]*model.EligibilityResult, error) {
	data, err := c.client.Get(ctx, c.key(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var results []*model.EligibilityResult
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *resultCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}
