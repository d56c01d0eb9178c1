package game

// GameError is a custom error type for round errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInsufficientPlayers GameError = "a game needs at least 2 players"
	ErrInvalidMove         GameError = "invalid move: choose r, p or s"
	ErrPlayerNotInGame     GameError = "player not in game"
)
