package arena

import (
	"time"

	"github.com/KirkDiggler/rochambeau/internal/common/clock"
	"github.com/KirkDiggler/rochambeau/internal/common/uuid"
	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/KirkDiggler/rochambeau/internal/repositories/blacklist"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	"github.com/KirkDiggler/rochambeau/internal/services/messaging"
	"github.com/KirkDiggler/rochambeau/internal/transport"
	"go.uber.org/zap"
)

// Config holds configuration for the arena service
type Config struct {
	// RoomCapacity is the number of players per match
	RoomCapacity int

	// CountdownSeconds is the length of a round
	CountdownSeconds int

	// RestartDelaySeconds is the pause after a tied round
	RestartDelaySeconds int

	// KeepAliveInterval is the gap between keep-alive pings, defaults to 2s
	KeepAliveInterval time.Duration

	// ScorePushInterval is the gap between score pushes, defaults to 1s
	ScorePushInterval time.Duration

	// RequeueAfterMatch puts players still connected back in the queue
	// when their match ends
	RequeueAfterMatch bool

	Queue      Queue
	Blacklist  blacklist.Repository
	Scoreboard scoreboard.Repository
	Messaging  messaging.Service

	// Clock drives loop intervals and room timers
	Clock clock.Clock

	// UUIDGenerator names rooms
	UUIDGenerator uuid.UUID

	Logger *zap.Logger
}

// ConnectInput contains parameters for connecting a player
type ConnectInput struct {
	PlayerID string
	Channel  transport.Channel
}

// ConnectOutput contains the result of connecting a player
type ConnectOutput struct {
	// Replaced is true when an older connection with the same id was evicted
	Replaced bool
}

// DisconnectInput contains parameters for disconnecting a player. The
// channel must be the one registered, so a stale connection cannot evict its
// replacement.
type DisconnectInput struct {
	PlayerID string
	Channel  transport.Channel
}

// DisconnectOutput contains the result of disconnecting a player
type DisconnectOutput struct {
	// Removed is false when the channel was no longer registered
	Removed bool
}

// HandleMessageInput contains one inbound message
type HandleMessageInput struct {
	PlayerID string
	Message  *models.Inbound
}

// HandleMessageOutput describes what a message did
type HandleMessageOutput struct {
	// Banned is set when the message blocked another player
	Banned string

	// Move is set when the message was accepted as a move
	Move models.Move
}

// GetScoreInput contains parameters for reading a score
type GetScoreInput struct {
	PlayerID string
}

// GetScoreOutput contains a player's score
type GetScoreOutput struct {
	Score *models.Score
}
