package game

// RuleEngine resolves pairs of moves with the circular distance rule: every
// move beats the half of the set that sits 1..half positions before it and
// loses to the other half.
type RuleEngine struct {
	moves *MoveSet
	half  int
}

func NewRuleEngine(moves *MoveSet) *RuleEngine {
	return &RuleEngine{
		moves: moves,
		half:  moves.Len() / 2,
	}
}

// NewEngine validates names and returns a ready engine.
func NewEngine(names []string) (*RuleEngine, error) {
	moves, err := NewMoveSet(names)
	if err != nil {
		return nil, err
	}
	return NewRuleEngine(moves), nil
}

func (e *RuleEngine) Moves() *MoveSet {
	return e.moves
}

// Resolve returns the outcome for first against second.
func (e *RuleEngine) Resolve(first, second string) (Outcome, error) {
	a, err := e.moves.Index(first)
	if err != nil {
		return "", err
	}
	b, err := e.moves.Index(second)
	if err != nil {
		return "", err
	}
	return e.decide(a, b), nil
}

// ResolveIndex is Resolve for zero-based positions.
func (e *RuleEngine) ResolveIndex(first, second int) (Outcome, error) {
	if _, err := e.moves.Name(first); err != nil {
		return "", err
	}
	if _, err := e.moves.Name(second); err != nil {
		return "", err
	}
	return e.decide(first, second), nil
}

func (e *RuleEngine) decide(a, b int) Outcome {
	switch {
	case a == b:
		return OutcomeDraw
	case a > b && a-b <= e.half:
		return OutcomeWin
	case b > a && b-a > e.half:
		return OutcomeWin
	default:
		return OutcomeLose
	}
}
