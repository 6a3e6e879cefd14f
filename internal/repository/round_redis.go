package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fair_rps/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

const keyRound = "round:%s"

type RedisRoundRepository struct {
	client *redis.Client
}

func NewRedisRoundRepository(client *redis.Client) *RedisRoundRepository {
	return &RedisRoundRepository{client: client}
}

// Save stores the round with a TTL. Existing ids are never overwritten.
func (r *RedisRoundRepository) Save(ctx context.Context, round *domain.Round, ttl time.Duration) error {
	data, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("marshal round: %w", err)
	}

	ok, err := r.client.SetNX(ctx, fmt.Sprintf(keyRound, round.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("save round: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoundExists, round.ID)
	}
	return nil
}

func (r *RedisRoundRepository) Get(ctx context.Context, id string) (*domain.Round, error) {
	data, err := r.client.Get(ctx, fmt.Sprintf(keyRound, id)).Bytes()
	return decodeRound(id, data, err)
}

func (r *RedisRoundRepository) Take(ctx context.Context, id string) (*domain.Round, error) {
	data, err := r.client.GetDel(ctx, fmt.Sprintf(keyRound, id)).Bytes()
	return decodeRound(id, data, err)
}

func (r *RedisRoundRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decodeRound(id string, data []byte, err error) (*domain.Round, error) {
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	}

	var round domain.Round
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, fmt.Errorf("unmarshal round: %w", err)
	}
	return &round, nil
}
