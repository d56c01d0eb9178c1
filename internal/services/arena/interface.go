package arena

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rochambeau/internal/services/arena Service

import "context"

// Service connects players to matches
type Service interface {
	// Connect registers a player's channel and puts them in the queue
	Connect(ctx context.Context, input *ConnectInput) (*ConnectOutput, error)

	// Disconnect unregisters a player, leaving their room and the queue
	Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error)

	// HandleMessage applies one inbound message from a player
	HandleMessage(ctx context.Context, input *HandleMessageInput) (*HandleMessageOutput, error)

	// GetScore returns a player's lifetime score
	GetScore(ctx context.Context, input *GetScoreInput) (*GetScoreOutput, error)

	// Run drives matchmaking, keep-alives and score pushes until ctx is done
	Run(ctx context.Context) error
}

// Queue is the matchmaking queue the service feeds
type Queue interface {
	Add(playerID string)
	Remove(playerID string)
	GetMatch(ctx context.Context, n int) ([]string, error)
}
