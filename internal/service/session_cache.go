package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

// SessionCache is a read-through cache in front of the session store. Cache
// failures must never fail a request; callers treat every error as a miss.
type SessionCache interface {
	Get(ctx context.Context, token string) (*domain.Session, error)
	Set(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, token string) error
}

const sessionCachePrefix = "session:"

type redisSessionCache struct {
	client *redis.Client
}

// NewRedisSessionCache caches sessions in Redis keyed by token. Entries
// expire together with the session itself, so a cache hit can still require
// an expiry check but never outlives the row it mirrors.
func NewRedisSessionCache(client *redis.Client) SessionCache {
	return &redisSessionCache{client: client}
}

func (c *redisSessionCache) Get(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := c.client.Get(ctx, sessionCachePrefix+token).Bytes()
	if err != nil {
		return nil, err
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *redisSessionCache) Set(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionCachePrefix+session.Token, raw, ttl).Err()
}

func (c *redisSessionCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionCachePrefix+token).Err()
}
