package scoreboard

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard Repository

import (
	"context"

	"github.com/KirkDiggler/rochambeau/internal/models"
)

// Repository defines the interface for the lifetime scoreboard.
// Counters only ever increase; nothing is reset or removed.
type Repository interface {
	// IncrementGames adds one played game to a player's tally
	IncrementGames(ctx context.Context, input *IncrementGamesInput) error

	// IncrementWins adds one won game to a player's tally
	IncrementWins(ctx context.Context, input *IncrementWinsInput) error

	// GetScore reads a player's tally. Returns ErrScoreNotFound for players
	// that have never finished a game.
	GetScore(ctx context.Context, input *GetScoreInput) (*models.Score, error)
}
