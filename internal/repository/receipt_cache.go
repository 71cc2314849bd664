package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"circles-backend/internal/errorx"
	"circles-backend/internal/model"

	"github.com/puzpuzpuz/xsync"
	"github.com/redis/go-redis/v9"
)

// ReceiptCache holds the "last investment" blob per user. A miss is
// reported as *errorx.NotFoundError.
type ReceiptCache interface {
	SetLast(ctx context.Context, userID string, last model.LastInvestment) error
	GetLast(ctx context.Context, userID string) (*model.LastInvestment, error)
}

func lastInvestmentKey(userID string) string {
	return "circles:last_investment:" + userID
}

type redisReceiptCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReceiptCache(client *redis.Client, ttl time.Duration) ReceiptCache {
	return &redisReceiptCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *redisReceiptCache) SetLast(ctx context.Context, userID string, last model.LastInvestment) error {
	b, err := json.Marshal(last)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, lastInvestmentKey(userID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache last investment: %w", err)
	}
	return nil
}

func (c *redisReceiptCache) GetLast(ctx context.Context, userID string) (*model.LastInvestment, error) {
	b, err := c.client.Get(ctx, lastInvestmentKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errorx.NewNotFound("last investment", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("read cached last investment: %w", err)
	}

	// the blob is not versioned; anything unreadable counts as a miss
	var last model.LastInvestment
	if err := json.Unmarshal(b, &last); err != nil {
		return nil, errorx.NewNotFound("last investment", userID)
	}
	return &last, nil
}

type memoryReceiptCache struct {
	entries *xsync.MapOf[string, model.LastInvestment]
}

// NewMemoryReceiptCache is used when no redis address is configured.
func NewMemoryReceiptCache() ReceiptCache {
	return &memoryReceiptCache{
		entries: xsync.NewMapOf[model.LastInvestment](),
	}
}

func (c *memoryReceiptCache) SetLast(_ context.Context, userID string, last model.LastInvestment) error {
	c.entries.Store(userID, last)
	return nil
}

func (c *memoryReceiptCache) GetLast(_ context.Context, userID string) (*model.LastInvestment, error) {
	last, ok := c.entries.Load(userID)
	if !ok {
		return nil, errorx.NewNotFound("last investment", userID)
	}
	return &last, nil
}
