// Package redis holds the Redis-backed stores: in-flight quiz runs and a
// shared quiz cache for multi-instance deployments.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quizflow/internal/app"
	"quizflow/internal/domain"
)

// RunStore keeps in-flight runs as TTL'd JSON values so abandoned runs
// expire on their own and instances can share them.
type RunStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRunStore(client *redis.Client, ttl time.Duration) *RunStore {
	return &RunStore{client: client, ttl: ttl}
}

func (s *RunStore) Put(ctx context.Context, run app.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	return s.client.Set(ctx, s.key(run.ID), data, s.ttl).Err()
}

func (s *RunStore) Get(ctx context.Context, id string) (app.Run, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return app.Run{}, domain.ErrRunNotFound
	}
	if err != nil {
		return app.Run{}, err
	}
	var run app.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return app.Run{}, fmt.Errorf("unmarshal run: %w", err)
	}
	return run, nil
}

func (s *RunStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *RunStore) key(id string) string {
	return "run:" + id
}
