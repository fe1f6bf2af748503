package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"variant-export-service/models"

	"github.com/go-redis/redis/v8"
)

const SessionKeyPrefix = "export:session:"

// RedisSessionRepository stores sessions as JSON values and lets Redis
// enforce expiry.
type RedisSessionRepository struct {
	redis *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{redis: client}
}

func (r *RedisSessionRepository) Put(ctx context.Context, session *models.ExportSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.redis.Set(ctx, SessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", session.ID, err)
	}
	return nil
}

func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.ExportSession, error) {
	raw, err := r.redis.Get(ctx, SessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}

	var session models.ExportSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &session, nil
}
