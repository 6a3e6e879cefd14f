package game

import (
	"fmt"
	"strings"
)

const (
	MinMoves = 3
	// DefaultMaxMoves bounds client-supplied move lists; the help table grows
	// with the square of the count.
	DefaultMaxMoves = 101
)

// MoveSet is an ordered list of distinct move names. The order defines the
// circular distance used by the rule engine and is kept exactly as supplied.
type MoveSet struct {
	names []string
	index map[string]int
}

// NewMoveSet validates names and builds the name/index mapping once.
func NewMoveSet(names []string) (*MoveSet, error) {
	if len(names) < MinMoves || len(names)%2 == 0 {
		return nil, fmt.Errorf("%w: please enter an odd number of non-repeating moves (at least %d), got %d",
			ErrInvalidConfiguration, MinMoves, len(names))
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: move %d has an empty name", ErrInvalidConfiguration, i+1)
		}
		if prev, ok := index[name]; ok {
			return nil, fmt.Errorf("%w: all moves must be distinct, %q appears at positions %d and %d",
				ErrInvalidConfiguration, name, prev+1, i+1)
		}
		index[name] = i
	}

	return &MoveSet{
		names: append([]string(nil), names...),
		index: index,
	}, nil
}

// ParseMoveSet splits a comma separated list, e.g. from a query string.
func ParseMoveSet(list string) (*MoveSet, error) {
	names, err := SplitMoves(list, DefaultMaxMoves)
	if err != nil {
		return nil, err
	}
	return NewMoveSet(names)
}

// CheckMoveCount rejects lists longer than max.
func CheckMoveCount(n, max int) error {
	if n > max {
		return fmt.Errorf("%w: at most %d moves are allowed, got %d", ErrInvalidConfiguration, max, n)
	}
	return nil
}

// SplitMoves splits a comma separated list like ParseMoveSet, refusing lists
// with more than max entries before splitting.
func SplitMoves(list string, max int) ([]string, error) {
	if err := CheckMoveCount(strings.Count(list, ",")+1, max); err != nil {
		return nil, err
	}
	var names []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names, nil
}

func (m *MoveSet) Len() int {
	return len(m.names)
}

// Names returns a copy of the moves in their original order.
func (m *MoveSet) Names() []string {
	return append([]string(nil), m.names...)
}

// Index returns the position of name.
func (m *MoveSet) Index(name string) (int, error) {
	i, ok := m.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMove, name)
	}
	return i, nil
}

// Name returns the move at position i.
func (m *MoveSet) Name(i int) (string, error) {
	if i < 0 || i >= len(m.names) {
		return "", fmt.Errorf("%w: index %d out of range [0,%d)", ErrUnknownMove, i, len(m.names))
	}
	return m.names[i], nil
}

func (m *MoveSet) Contains(name string) bool {
	_, ok := m.index[name]
	return ok
}
