package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	analyticsDomain "github.com/dayflow/dayflow/internal/analytics/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultScoreCacheTTL bounds how long a finalized score stays cached.
// Finalized scores never change, so the TTL only limits memory growth.
const DefaultScoreCacheTTL = 30 * 24 * time.Hour

// RedisScoreCache implements analytics.ScoreCache with Redis-backed
// storage. Keys are namespaced: dayflow:score:{user_id}:{date}.
type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisScoreCache creates a new Redis score cache.
// Pass 0 for ttl to use DefaultScoreCacheTTL.
func NewRedisScoreCache(client *redis.Client, ttl time.Duration) *RedisScoreCache {
	if ttl <= 0 {
		ttl = DefaultScoreCacheTTL
	}
	return &RedisScoreCache{client: client, ttl: ttl}
}

func scoreKey(userID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("dayflow:score:%s:%s", userID, day.UTC().Format("2006-01-02"))
}

// Get returns the cached score, or nil on a miss.
func (c *RedisScoreCache) Get(ctx context.Context, userID uuid.UUID, day time.Time) (*analyticsDomain.DailyScore, error) {
	val, err := c.client.Get(ctx, scoreKey(userID, day)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var score analyticsDomain.DailyScore
	if err := json.Unmarshal(val, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// Set caches a finalized score. Non-finalized scores are ignored since
// they may still change before their day ends.
func (c *RedisScoreCache) Set(ctx context.Context, score analyticsDomain.DailyScore) error {
	if !score.Finalized {
		return nil
	}
	payload, err := json.Marshal(score)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, scoreKey(score.UserID, score.Day), payload, c.ttl).Err()
}

// Invalidate drops a cached score.
func (c *RedisScoreCache) Invalidate(ctx context.Context, userID uuid.UUID, day time.Time) error {
	return c.client.Del(ctx, scoreKey(userID, day)).Err()
}
