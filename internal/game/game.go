package game

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid move configuration")
	ErrUnknownMove          = errors.New("unknown move")
)

// Outcome is always read from the first move's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeDraw Outcome = "draw"
)

// Opposite returns the outcome seen from the other side of the pair.
func (o Outcome) Opposite() Outcome {
	switch o {
	case OutcomeWin:
		return OutcomeLose
	case OutcomeLose:
		return OutcomeWin
	default:
		return o
	}
}

// Title returns the capitalized form used in tables and menus.
func (o Outcome) Title() string {
	switch o {
	case OutcomeWin:
		return "Win"
	case OutcomeLose:
		return "Lose"
	case OutcomeDraw:
		return "Draw"
	default:
		return string(o)
	}
}
