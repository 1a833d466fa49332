package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tube24/tube24_go_server/internal/model"
)

const demoKeyPrefix = "demo:channel:"

var ErrDemoChannelNotFound = errors.New("demo channel not found")

// DemoChannelRepository 体验频道存 Redis，TTL 到期自动消失
type DemoChannelRepository struct {
	rdb *redis.Client
}

func NewDemoChannelRepository(rdb *redis.Client) *DemoChannelRepository {
	return &DemoChannelRepository{rdb: rdb}
}

func (r *DemoChannelRepository) Save(ctx context.Context, demo *model.DemoChannel, ttl time.Duration) error {
	data, err := json.Marshal(demo)
	if err != nil {
		return fmt.Errorf("failed to marshal demo channel: %w", err)
	}

	key := demoKeyPrefix + demo.ID
	if err := r.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store demo channel: %w", err)
	}
	return nil
}

func (r *DemoChannelRepository) Get(ctx context.Context, id string) (*model.DemoChannel, error) {
	key := demoKeyPrefix + id
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrDemoChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get demo channel: %w", err)
	}

	var demo model.DemoChannel
	if err := json.Unmarshal(data, &demo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal demo channel: %w", err)
	}
	return &demo, nil
}

func (r *DemoChannelRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, demoKeyPrefix+id).Err()
}
