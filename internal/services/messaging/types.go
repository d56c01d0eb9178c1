package messaging

import (
	"github.com/KirkDiggler/rochambeau/internal/dice"
	"github.com/KirkDiggler/rochambeau/internal/models"
)

// GetJoinMessageInput contains parameters for a join notice
type GetJoinMessageInput struct {
	// PlayerID is the player joining
	PlayerID string
}

// GetJoinMessageOutput contains the join notice
type GetJoinMessageOutput struct {
	Message string
}

// GetLeaveMessageInput contains parameters for a leave notice
type GetLeaveMessageInput struct {
	PlayerID string
}

// GetLeaveMessageOutput contains the leave notice
type GetLeaveMessageOutput struct {
	Message string
}

// GetRoundSummaryMessageInput describes a resolved round
type GetRoundSummaryMessageInput struct {
	// Tie is true when nobody won
	Tie bool

	// LuckyMove is the winning move, empty on a tie
	LuckyMove models.Move

	// WinnerCount is how many players share the win
	WinnerCount int
}

// GetRoundSummaryMessageOutput contains the summary line
type GetRoundSummaryMessageOutput struct {
	Message string
}

// GetKeepAliveMessageInput is the input for GetKeepAliveMessage
type GetKeepAliveMessageInput struct{}

// GetKeepAliveMessageOutput contains the keep-alive line
type GetKeepAliveMessageOutput struct {
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Roller picks among message variants. Required.
	Roller dice.Roller

	// KeepAliveLines overrides the default chant (optional)
	KeepAliveLines []string
}
