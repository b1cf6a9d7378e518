package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"repair-backend/internal/models"
)

const snapshotKey = "repair:snapshot"

// RedisStore keeps the whole snapshot as one JSON value under a single key.
// SET is atomic, so a reader sees either the old or the new snapshot,
// never a partial one.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (r *RedisStore) Save(ctx context.Context, snap models.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.Client.Set(ctx, snapshotKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	payload, err := r.Client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return snap, nil // nothing persisted yet
	}
	if err != nil {
		return snap, fmt.Errorf("load snapshot: %w", err)
	}
	if err := json.Unmarshal(payload, &snap); err != nil {
		return snap, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}
