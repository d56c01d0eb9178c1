package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rochambeau/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetJoinMessage returns the notice sent to a room when a player joins
	GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error)

	// GetLeaveMessage returns the notice sent to a room when a player drops
	GetLeaveMessage(ctx context.Context, input *GetLeaveMessageInput) (*GetLeaveMessageOutput, error)

	// GetRoundSummaryMessage returns a one-liner describing how a round ended
	GetRoundSummaryMessage(ctx context.Context, input *GetRoundSummaryMessageInput) (*GetRoundSummaryMessageOutput, error)

	// GetKeepAliveMessage returns the next line of the keep-alive chant.
	// Lines repeat in order.
	GetKeepAliveMessage(ctx context.Context, input *GetKeepAliveMessageInput) (*GetKeepAliveMessageOutput, error)
}
