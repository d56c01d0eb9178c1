package room

import (
	"github.com/KirkDiggler/rochambeau/internal/common/clock"
	"github.com/KirkDiggler/rochambeau/internal/models"
	"github.com/KirkDiggler/rochambeau/internal/repositories/scoreboard"
	"github.com/KirkDiggler/rochambeau/internal/services/messaging"
	"go.uber.org/zap"
)

const (
	defaultCountdownSeconds    = 10
	defaultRestartDelaySeconds = 3
)

// Phase is where a room is in its lifecycle
type Phase string

const (
	// PhaseLobby accepts players until the room is full
	PhaseLobby Phase = "lobby"

	// PhaseCountdown is a round in progress, accepting moves
	PhaseCountdown Phase = "countdown"

	// PhaseResolved is a finished round. After a win it is terminal.
	PhaseResolved Phase = "resolved"

	// PhaseRestarting is the delay between a tied round and the next one
	PhaseRestarting Phase = "restarting"
)

// Sender delivers a message to one occupant
type Sender interface {
	Send(msg *models.Outbound) error
}

// Config holds configuration for a room
type Config struct {
	// ID identifies the room in logs
	ID string

	// Capacity is the exact number of players a match needs
	Capacity int

	// CountdownSeconds is the length of a round, defaults to 10
	CountdownSeconds int

	// RestartDelaySeconds is the pause after a tie, defaults to 3
	RestartDelaySeconds int

	Scoreboard scoreboard.Repository
	Messaging  messaging.Service

	// Clock drives the timers, defaults to the system clock
	Clock clock.Clock

	Logger *zap.Logger
}
