package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLPost           = 1 * time.Minute  // published post payloads
	TTLWorkflowConfig = 10 * time.Minute // workflow configs change rarely
	TTLDefault        = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixPost           = "post:"
	PrefixWorkflowConfig = "workflow-config:"
)

// Service Redis cache service interface
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Post payload cache
	GetPost(ctx context.Context, postID uint64, dest interface{}) error
	SetPost(ctx context.Context, postID uint64, data interface{}) error
	InvalidatePost(ctx context.Context, postID uint64) error

	// Workflow config cache
	GetWorkflowConfig(ctx context.Context, postType string, dest interface{}) error
	SetWorkflowConfig(ctx context.Context, postType string, data interface{}) error
	InvalidateWorkflowConfig(ctx context.Context, postType string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis-backed cache implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis client is attached
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a value from the cache
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set writes a value to the cache
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists checks whether a key exists
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) postKey(postID uint64) string {
	return fmt.Sprintf("%s%d", PrefixPost, postID)
}

func (c *redisCache) GetPost(ctx context.Context, postID uint64, dest interface{}) error {
	return c.Get(ctx, c.postKey(postID), dest)
}

func (c *redisCache) SetPost(ctx context.Context, postID uint64, data interface{}) error {
	return c.Set(ctx, c.postKey(postID), data, TTLPost)
}

func (c *redisCache) InvalidatePost(ctx context.Context, postID uint64) error {
	return c.Delete(ctx, c.postKey(postID))
}

func (c *redisCache) workflowConfigKey(postType string) string {
	if postType == "" {
		return PrefixWorkflowConfig + "default"
	}
	return PrefixWorkflowConfig + postType
}

func (c *redisCache) GetWorkflowConfig(ctx context.Context, postType string, dest interface{}) error {
	return c.Get(ctx, c.workflowConfigKey(postType), dest)
}

func (c *redisCache) SetWorkflowConfig(ctx context.Context, postType string, data interface{}) error {
	return c.Set(ctx, c.workflowConfigKey(postType), data, TTLWorkflowConfig)
}

func (c *redisCache) InvalidateWorkflowConfig(ctx context.Context, postType string) error {
	return c.Delete(ctx, c.workflowConfigKey(postType))
}
