package fairness

import (
	"encoding/hex"
	"fmt"
)

// Sealed is the server-side form of an unrevealed commitment. It may be kept
// in a private store between requests but must never be sent to the player.
type Sealed struct {
	Key  string `json:"key"`
	Move string `json:"move"`
	HMAC string `json:"hmac"`
}

func (c *Commitment) Seal() Sealed {
	return Sealed{Key: c.key, Move: c.move, HMAC: c.digest}
}

// Unseal restores a committed (not yet revealed) commitment. The HMAC is
// recomputed so a record edited in storage is rejected.
func Unseal(s Sealed) (*Commitment, error) {
	raw, err := hex.DecodeString(s.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: key is not hex: %w", ErrTampered, err)
	}
	if len(raw) < MinKeyBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrWeakKey, len(raw))
	}
	if !Verify(s.Key, s.Move, s.HMAC) {
		return nil, ErrTampered
	}
	return &Commitment{
		key:    s.Key,
		move:   s.Move,
		digest: s.HMAC,
		state:  StateCommitted,
	}, nil
}
