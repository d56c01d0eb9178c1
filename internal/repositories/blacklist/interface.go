package blacklist

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rochambeau/internal/repositories/blacklist Repository

import "context"

// Repository stores the symmetric ban relation between players.
// Bans are permanent; there is no unban.
type Repository interface {
	// Ban records that two players must never share a room. Idempotent.
	Ban(ctx context.Context, input *BanInput) error

	// IsBanned reports whether the pair was banned, in either direction
	IsBanned(ctx context.Context, input *IsBannedInput) (bool, error)

	// GetBanned lists everyone a player is split from, sorted
	GetBanned(ctx context.Context, input *GetBannedInput) (*GetBannedOutput, error)
}
