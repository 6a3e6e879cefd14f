package repository

import (
	"context"
	"errors"
	"time"

	"fair_rps/internal/domain"
)

var (
	ErrRoundNotFound = errors.New("round not found")
	ErrRoundExists   = errors.New("round already exists")
)

// RoundRepository keeps pending rounds until they are played or expire.
type RoundRepository interface {
	Save(ctx context.Context, r *domain.Round, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Round, error)
	// Take returns the round and deletes it in one step, so a round can be
	// played at most once.
	Take(ctx context.Context, id string) (*domain.Round, error)
	Ping(ctx context.Context) error
}
