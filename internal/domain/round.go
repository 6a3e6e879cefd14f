package domain

import (
	"time"

	"fair_rps/internal/fairness"
)

// Round is a pending round: committed, waiting for the player's move.
// It is deleted when played and never kept as history.
type Round struct {
	ID        string          `json:"id"`
	Moves     []string        `json:"moves"`
	Sealed    fairness.Sealed `json:"sealed"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}
