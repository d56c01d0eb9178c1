package scoreboard

import "errors"

// ErrScoreNotFound is returned when a player has no score yet
var ErrScoreNotFound = errors.New("score not found")

// IncrementGamesInput contains parameters for counting a played game
type IncrementGamesInput struct {
	PlayerID string
}

// IncrementWinsInput contains parameters for counting a won game
type IncrementWinsInput struct {
	PlayerID string
}

// GetScoreInput contains parameters for reading a score
type GetScoreInput struct {
	PlayerID string
}
