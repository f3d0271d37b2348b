package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AJV009/oracle11/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for cached documents
	documentKeyPrefix = "document:cache:"
)

// ErrCacheMiss is returned when no entry exists for a celebration
var ErrCacheMiss = errors.New("no cached document")

// Config holds configuration for the Redis cache repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// cacheEntry is the stored envelope: the document plus when it was cached
type cacheEntry struct {
	Document *models.GameDocument `json:"document"`
	StoredAt time.Time            `json:"storedAt"`
}

// NewRedis creates a new Redis-backed document cache
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetDocument retrieves the cached document for a celebration
func (r *redisRepository) GetDocument(ctx context.Context, input *GetDocumentInput) (*GetDocumentOutput, error) {
	if input == nil || input.CelebrationID == "" {
		return nil, errors.New("input and celebration ID cannot be empty")
	}

	key := fmt.Sprintf("%s%s", documentKeyPrefix, input.CelebrationID)
	entryJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached document: %w", err)
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached document: %w", err)
	}

	if entry.Document == nil {
		return nil, ErrCacheMiss
	}
	entry.Document.Normalize()

	return &GetDocumentOutput{
		Document: entry.Document,
		StoredAt: entry.StoredAt,
	}, nil
}

// SetDocument stores a document for a celebration
func (r *redisRepository) SetDocument(ctx context.Context, input *SetDocumentInput) error {
	if input == nil || input.CelebrationID == "" {
		return errors.New("input and celebration ID cannot be empty")
	}

	if input.Document == nil {
		return errors.New("document cannot be nil")
	}

	entryJSON, err := json.Marshal(&cacheEntry{
		Document: input.Document,
		StoredAt: input.StoredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	key := fmt.Sprintf("%s%s", documentKeyPrefix, input.CelebrationID)
	if err := r.client.Set(ctx, key, entryJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set cached document: %w", err)
	}

	return nil
}

// DeleteDocument drops the cache entry for a celebration
func (r *redisRepository) DeleteDocument(ctx context.Context, input *DeleteDocumentInput) error {
	if input == nil || input.CelebrationID == "" {
		return errors.New("input and celebration ID cannot be empty")
	}

	key := fmt.Sprintf("%s%s", documentKeyPrefix, input.CelebrationID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached document: %w", err)
	}

	return nil
}
