package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/IkingariSolorzano/gymcredit-be/models"
)

const (
	GymListKey = "gyms:all"
	GymListTTL = 5 * time.Minute
)

// GymCache stores the public gym listing. A miss returns (nil, false, nil).
type GymCache interface {
	GetGyms(ctx context.Context) ([]models.Gym, bool, error)
	SetGyms(ctx context.Context, gyms []models.Gym) error
	InvalidateGyms(ctx context.Context) error
}

type RedisGymCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGymCache(rdb *redis.Client) *RedisGymCache {
	return &RedisGymCache{rdb: rdb, ttl: GymListTTL}
}

func (c *RedisGymCache) GetGyms(ctx context.Context) ([]models.Gym, bool, error) {
	cached, err := c.rdb.Get(ctx, GymListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var gyms []models.Gym
	if err := json.Unmarshal(cached, &gyms); err != nil {
		return nil, false, err
	}
	return gyms, true, nil
}

func (c *RedisGymCache) SetGyms(ctx context.Context, gyms []models.Gym) error {
	data, err := json.Marshal(gyms)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, GymListKey, data, c.ttl).Err()
}

func (c *RedisGymCache) InvalidateGyms(ctx context.Context) error {
	return c.rdb.Del(ctx, GymListKey).Err()
}
