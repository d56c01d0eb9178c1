package models

import (
	"errors"
	"strings"
)

// ErrInvalidMove is returned when a string does not name a move
var ErrInvalidMove = errors.New("invalid move: choose r, p or s")

// Move is a hand shape a player can throw in a round
type Move string

const (
	// MoveRock beats scissors
	MoveRock Move = "r"

	// MovePaper beats rock
	MovePaper Move = "p"

	// MoveScissors beats paper
	MoveScissors Move = "s"
)

// Moves lists every valid move
var Moves = []Move{MoveRock, MovePaper, MoveScissors}

var beats = map[Move]Move{
	MoveRock:     MoveScissors,
	MovePaper:    MoveRock,
	MoveScissors: MovePaper,
}

// IsValid reports whether the move is one of the enumerated values
func (m Move) IsValid() bool {
	_, ok := beats[m]
	return ok
}

// Beats reports whether m wins against other
func (m Move) Beats(other Move) bool {
	victim, ok := beats[m]
	return ok && victim == other
}

// String returns the upper-case name, e.g. ROCK
func (m Move) String() string {
	switch m {
	case MoveRock:
		return "ROCK"
	case MovePaper:
		return "PAPER"
	case MoveScissors:
		return "SCISSORS"
	}
	return "UNKNOWN"
}

// ParseMove accepts the single-letter wire form or the full name, in any case
// and with surrounding whitespace.
func ParseMove(raw string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "r", "rock":
		return MoveRock, nil
	case "p", "paper":
		return MovePaper, nil
	case "s", "scissors":
		return MoveScissors, nil
	}
	return "", ErrInvalidMove
}
