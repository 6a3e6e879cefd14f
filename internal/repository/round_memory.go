package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fair_rps/internal/domain"
)

type memoryEntry struct {
	round     domain.Round
	expiresAt time.Time
}

// MemoryRoundRepository is used when Redis is not configured. Pending rounds
// are lost on restart.
type MemoryRoundRepository struct {
	mu     sync.Mutex
	rounds map[string]memoryEntry
	now    func() time.Time
}

func NewMemoryRoundRepository() *MemoryRoundRepository {
	return &MemoryRoundRepository{
		rounds: make(map[string]memoryEntry),
		now:    time.Now,
	}
}

func (r *MemoryRoundRepository) Save(_ context.Context, round *domain.Round, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.rounds[round.ID]; ok && r.now().Before(e.expiresAt) {
		return fmt.Errorf("%w: %s", ErrRoundExists, round.ID)
	}
	r.rounds[round.ID] = memoryEntry{
		round:     copyRound(round),
		expiresAt: r.now().Add(ttl),
	}
	return nil
}

func (r *MemoryRoundRepository) Get(_ context.Context, id string) (*domain.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, id)
	}
	round := copyRound(&e.round)
	return &round, nil
}

func (r *MemoryRoundRepository) Take(_ context.Context, id string) (*domain.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, id)
	}
	delete(r.rounds, id)
	round := copyRound(&e.round)
	return &round, nil
}

func (r *MemoryRoundRepository) Ping(context.Context) error {
	return nil
}

// StartCleanup evicts expired rounds every interval until ctx is done.
func (r *MemoryRoundRepository) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.cleanupExpired()
			}
		}
	}()
}

func (r *MemoryRoundRepository) cleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	now := r.now()
	for id, e := range r.rounds {
		if !now.Before(e.expiresAt) {
			delete(r.rounds, id)
			removed++
		}
	}
	return removed
}

// lookup must be called with mu held.
func (r *MemoryRoundRepository) lookup(id string) (memoryEntry, bool) {
	e, ok := r.rounds[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.rounds, id)
		return memoryEntry{}, false
	}
	return e, true
}

func copyRound(r *domain.Round) domain.Round {
	c := *r
	c.Moves = append([]string(nil), r.Moves...)
	return c
}
