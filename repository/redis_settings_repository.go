package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const SettingsKey = "export:settings:v1"

// RedisSettingsRepository keeps the settings as one JSON object without expiry.
type RedisSettingsRepository struct {
	redis *redis.Client
}

func NewRedisSettingsRepository(client *redis.Client) *RedisSettingsRepository {
	return &RedisSettingsRepository{redis: client}
}

// Load returns the stored values, or an empty map when nothing was saved yet.
func (r *RedisSettingsRepository) Load(ctx context.Context) (map[string]string, error) {
	raw, err := r.redis.Get(ctx, SettingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get settings: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return values, nil
}

func (r *RedisSettingsRepository) Save(ctx context.Context, values map[string]string) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := r.redis.Set(ctx, SettingsKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set settings: %w", err)
	}
	return nil
}
