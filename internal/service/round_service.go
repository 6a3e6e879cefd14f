package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"fair_rps/internal/domain"
	"fair_rps/internal/fairness"
	"fair_rps/internal/game"
	"fair_rps/internal/repository"

	"github.com/google/uuid"
)

var ErrRoundNotFound = repository.ErrRoundNotFound

// RoundConfig holds the server-wide round settings.
type RoundConfig struct {
	Moves    []string
	KeyBytes int
	TTL      time.Duration
	// MaxMoves bounds client-supplied move lists; zero means
	// game.DefaultMaxMoves.
	MaxMoves int
	// Random defaults to crypto/rand.
	Random io.Reader
}

// RoundService runs commit-reveal rounds against the computer. A round is
// committed by Start and revealed by Play; nothing is kept afterwards.
type RoundService struct {
	repo     repository.RoundRepository
	random   io.Reader
	keyBytes int
	ttl      time.Duration
	maxMoves int
	defaults *game.MoveSet
	now      func() time.Time
}

func NewRoundService(repo repository.RoundRepository, cfg RoundConfig) (*RoundService, error) {
	moves, err := game.NewMoveSet(cfg.Moves)
	if err != nil {
		return nil, err
	}
	if cfg.KeyBytes < fairness.MinKeyBytes {
		return nil, fmt.Errorf("%w: %d bytes", fairness.ErrWeakKey, cfg.KeyBytes)
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("round ttl must be positive")
	}
	if cfg.MaxMoves == 0 {
		cfg.MaxMoves = game.DefaultMaxMoves
	}
	if cfg.MaxMoves < moves.Len() {
		return nil, fmt.Errorf("max moves %d is below the %d configured moves", cfg.MaxMoves, moves.Len())
	}
	return &RoundService{
		repo:     repo,
		random:   cfg.Random,
		keyBytes: cfg.KeyBytes,
		ttl:      cfg.TTL,
		maxMoves: cfg.MaxMoves,
		defaults: moves,
		now:      time.Now,
	}, nil
}

// StartedRound is what the player sees before moving.
type StartedRound struct {
	ID        string    `json:"round_id"`
	HMAC      string    `json:"hmac"`
	Moves     []string  `json:"moves"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RoundResult is returned once, when the round is played.
type RoundResult struct {
	ID           string       `json:"round_id"`
	YourMove     string       `json:"your_move"`
	ComputerMove string       `json:"computer_move"`
	Result       game.Outcome `json:"result"`
	Key          string       `json:"key"`
	HMAC         string       `json:"hmac"`
}

// RulesTable is the help table for a move set.
type RulesTable struct {
	Moves []string   `json:"moves"`
	Table [][]string `json:"table"`
}

// Start commits to a computer move over names, or over the configured moves
// when names is empty.
func (s *RoundService) Start(ctx context.Context, names []string) (*StartedRound, error) {
	moves, err := s.moveSet(names)
	if err != nil {
		return nil, err
	}

	c, err := fairness.Commit(s.random, moves, s.keyBytes)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	round := &domain.Round{
		ID:        uuid.NewString(),
		Moves:     moves.Names(),
		Sealed:    c.Seal(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Save(ctx, round, s.ttl); err != nil {
		return nil, err
	}

	roundsStarted.Inc()
	return &StartedRound{
		ID:        round.ID,
		HMAC:      c.Digest(),
		Moves:     round.Moves,
		ExpiresAt: round.ExpiresAt,
	}, nil
}

// Play resolves move against the committed computer move and reveals the key.
// An unknown move leaves the round pending.
func (s *RoundService) Play(ctx context.Context, id, move string) (*RoundResult, error) {
	round, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	engine, err := game.NewEngine(round.Moves)
	if err != nil {
		return nil, err
	}
	if !engine.Moves().Contains(move) {
		return nil, fmt.Errorf("%w: %q", game.ErrUnknownMove, move)
	}

	// another request may have played it since Get
	round, err = s.repo.Take(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := fairness.Unseal(round.Sealed)
	if err != nil {
		return nil, err
	}
	opening, err := c.Reveal()
	if err != nil {
		return nil, err
	}

	outcome, err := engine.Resolve(move, opening.Move)
	if err != nil {
		return nil, err
	}

	roundsPlayed.WithLabelValues(string(outcome)).Inc()
	return &RoundResult{
		ID:           round.ID,
		YourMove:     move,
		ComputerMove: opening.Move,
		Result:       outcome,
		Key:          opening.Key,
		HMAC:         c.Digest(),
	}, nil
}

// Verify checks a revealed round. It needs no stored state.
func (s *RoundService) Verify(key, move, digest string) bool {
	ok := fairness.Verify(key, move, digest)
	verifications.WithLabelValues(fmt.Sprint(ok)).Inc()
	return ok
}

func (s *RoundService) Rules(names []string) (*RulesTable, error) {
	moves, err := s.moveSet(names)
	if err != nil {
		return nil, err
	}
	engine := game.NewRuleEngine(moves)
	return &RulesTable{
		Moves: moves.Names(),
		Table: game.HelpTable(engine),
	}, nil
}

func (s *RoundService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// MaxMoves is the longest move list Start and Rules accept.
func (s *RoundService) MaxMoves() int {
	return s.maxMoves
}

func (s *RoundService) moveSet(names []string) (*game.MoveSet, error) {
	if len(names) == 0 {
		return s.defaults, nil
	}
	if err := game.CheckMoveCount(len(names), s.maxMoves); err != nil {
		return nil, err
	}
	return game.NewMoveSet(names)
}
