package common

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheService implements CacheInterface using Redis. Values are JSON
// encoded, so only types that survive a JSON round trip belong here.
type RedisCacheService struct {
	client *redis.Client
	ctx    context.Context
}

// Ensure RedisCacheService implements CacheInterface
var _ CacheInterface = (*RedisCacheService)(nil)

// NewRedisCacheService creates a Redis-backed cache service
func NewRedisCacheService() *RedisCacheService {
	return &RedisCacheService{
		client: NewRedisClient(),
		ctx:    context.Background(),
	}
}

func (rc *RedisCacheService) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	rc.client.Set(rc.ctx, key, data, duration)
}

func (rc *RedisCacheService) Get(key string) (interface{}, bool) {
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return value, true
}

func (rc *RedisCacheService) Delete(key string) {
	rc.client.Del(rc.ctx, key)
}

func (rc *RedisCacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error)) (interface{}, error) {
	if val, found := rc.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	rc.Set(key, val, duration)
	return val, nil
}

func (rc *RedisCacheService) Close() error {
	return rc.client.Close()
}
