// Package fairness implements the commit-reveal scheme that binds the
// computer's move before the player chooses.
//
// The computer draws a random key and a uniformly random move, then publishes
// HMAC-SHA256(key, move). After the player moves, the key and move are revealed
// and anyone can recompute the HMAC with Verify.
package fairness

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"fair_rps/internal/game"
)

// MinKeyBytes is 256 bits of key material.
const MinKeyBytes = 32

var (
	ErrInsufficientEntropy = errors.New("insufficient entropy")
	ErrWeakKey             = errors.New("key too short")
	ErrAlreadyRevealed     = errors.New("commitment already revealed")
	ErrTampered            = errors.New("sealed commitment does not match its hmac")
)

type State int

const (
	StateCommitted State = iota + 1
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateCommitted:
		return "committed"
	case StateRevealed:
		return "revealed"
	default:
		return "uncommitted"
	}
}

// Commitment is single use: the move is drawn once and never re-drawn.
type Commitment struct {
	key    string
	move   string
	digest string
	state  State
}

// Opening is what the verifier receives after the round.
type Opening struct {
	Key  string `json:"key"`
	Move string `json:"move"`
}

// Commit draws keyBytes of key material and one move from moves, both from
// random. A nil random uses crypto/rand.
func Commit(random io.Reader, moves *game.MoveSet, keyBytes int) (*Commitment, error) {
	if keyBytes < MinKeyBytes {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrWeakKey, keyBytes, MinKeyBytes)
	}
	if random == nil {
		random = rand.Reader
	}

	key := make([]byte, keyBytes)
	if _, err := io.ReadFull(random, key); err != nil {
		return nil, fmt.Errorf("%w: read key: %w", ErrInsufficientEntropy, err)
	}

	i, err := uniformIndex(random, moves.Len())
	if err != nil {
		return nil, fmt.Errorf("%w: draw move: %w", ErrInsufficientEntropy, err)
	}
	move, err := moves.Name(i)
	if err != nil {
		return nil, err
	}

	keyHex := hex.EncodeToString(key)
	return &Commitment{
		key:    keyHex,
		move:   move,
		digest: Sign(keyHex, move),
		state:  StateCommitted,
	}, nil
}

// Digest is safe to publish before the player moves.
func (c *Commitment) Digest() string {
	return c.digest
}

func (c *Commitment) State() State {
	return c.state
}

// Reveal exposes the key and the committed move. It succeeds once.
func (c *Commitment) Reveal() (Opening, error) {
	if c.state == StateRevealed {
		return Opening{}, ErrAlreadyRevealed
	}
	c.state = StateRevealed
	return Opening{Key: c.key, Move: c.move}, nil
}

// Sign computes the hex HMAC-SHA256 of move keyed by the hex text of the key,
// matching what common online HMAC calculators produce for the same inputs.
func Sign(keyHex, move string) string {
	mac := hmac.New(sha256.New, []byte(keyHex))
	mac.Write([]byte(move))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether digest is the HMAC of move under keyHex.
func Verify(keyHex, move, digest string) bool {
	keyHex = strings.ToLower(strings.TrimSpace(keyHex))
	digest = strings.ToLower(strings.TrimSpace(digest))
	want := Sign(keyHex, move)
	return hmac.Equal([]byte(want), []byte(digest))
}

// uniformIndex returns an unbiased integer in [0,n) by rejecting the top
// 2^64 mod n values.
func uniformIndex(r io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cannot draw from %d values", n)
	}
	bound := uint64(n)
	rem := (math.MaxUint64%bound + 1) % bound
	limit := uint64(math.MaxUint64) - rem

	var buf [8]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		if v := binary.BigEndian.Uint64(buf[:]); v <= limit {
			return int(v % bound), nil
		}
	}
}
