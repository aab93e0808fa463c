package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"troywings/internal/platform/metrics"
	"troywings/internal/registration/models"
)

const listCacheKey = "registration:users:list"

// Cached wraps a UserStore with a Redis read-through cache for List.
// Writes invalidate the cached list. Cache failures degrade to the
// underlying store; they never fail the caller.
type Cached struct {
	next    UserStore
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCached constructs the caching wrapper. A nil client returns the
// underlying store unchanged.
func NewCached(next UserStore, client *redis.Client, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) UserStore {
	if client == nil {
		return next
	}
	return &Cached{next: next, client: client, ttl: ttl, logger: logger, metrics: m}
}

func (c *Cached) Create(ctx context.Context, user *models.User) error {
	if err := c.next.Create(ctx, user); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Cached) List(ctx context.Context) ([]models.User, error) {
	payload, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err == nil {
		var users []models.User
		if err := json.Unmarshal(payload, &users); err == nil {
			c.metrics.RecordCacheHit()
			return users, nil
		}
		// Undecodable payload: drop it and fall through to the store.
		c.invalidate(ctx)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "user list cache read failed", "error", err)
	}

	c.metrics.RecordCacheMiss()
	users, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(users); err == nil {
		if err := c.client.Set(ctx, listCacheKey, payload, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "user list cache write failed", "error", err)
		}
	}
	return users, nil
}

func (c *Cached) Update(ctx context.Context, user models.User) error {
	if err := c.next.Update(ctx, user); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Cached) FindByID(ctx context.Context, id int64) (models.User, error) {
	return c.next.FindByID(ctx, id)
}

func (c *Cached) invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, listCacheKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "user list cache invalidation failed", "error", err)
	}
}
